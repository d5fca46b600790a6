package framelai

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCollection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		frames  Collection
		wantErr bool
	}{
		{"valid", testFrames(), false},
		{"empty", Collection{}, false},
		{"empty frame id", Collection{{Name: "x"}}, true},
		{"duplicate frame id", Collection{{ID: "f"}, {ID: "f"}}, true},
		{"empty element id", Collection{{ID: "f", Texts: []TextElement{{Content: "x"}}}}, true},
		{"duplicate element across frames", Collection{
			{ID: "f1", Texts: []TextElement{{ID: "t", Content: "x"}}},
			{ID: "f2", Texts: []TextElement{{ID: "t", Content: "y"}}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frames.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollection_Merge(t *testing.T) {
	frames := testFrames()

	changed := frames.merge(map[string]string{
		"a":       "Hola",
		"b":       "World", // unchanged
		"missing": "ignored",
	})

	if changed != 1 {
		t.Errorf("merge() = %d, want 1", changed)
	}
	if frames[0].Texts[0].Content != "Hola" {
		t.Errorf("element a = %q", frames[0].Texts[0].Content)
	}

	want := testFrames()
	if !reflect.DeepEqual(frames[1:], want[1:]) {
		t.Error("frames without mapped elements changed")
	}
}

func TestCollection_CloneAndLookup(t *testing.T) {
	frames := testFrames()
	clone := frames.Clone()
	clone[0].Texts[0].Content = "x"

	if frames[0].Texts[0].Content != "Hello" {
		t.Error("Clone should deep-copy text elements")
	}

	f, ok := frames.Lookup("f2")
	if !ok || f.Name != "Footer" {
		t.Errorf("Lookup(f2) = %+v, %v", f, ok)
	}
	if _, ok := frames.Lookup("nope"); ok {
		t.Error("Lookup should miss unknown IDs")
	}
	if Collection(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestDetectedLanguage_String(t *testing.T) {
	tests := []struct {
		d    DetectedLanguage
		want string
	}{
		{DetectedLanguage{}, "N/A"},
		{DetectedLanguage{State: DetectionPending}, "Detecting..."},
		{DetectedLanguage{State: DetectionFailed}, "Detection failed"},
		{DetectedLanguage{State: DetectionResolved, Label: "English"}, "English"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.d, got, tt.want)
		}
	}

	if (DetectedLanguage{State: DetectionResolved}).Resolved() {
		t.Error("resolved state without a label is not usable")
	}
}

func TestDetectionState_JSON(t *testing.T) {
	data, err := json.Marshal(DetectedLanguage{State: DetectionResolved, Label: "English"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"state":"resolved","label":"English"}` {
		t.Errorf("json = %s", data)
	}

	var d DetectedLanguage
	if err := json.Unmarshal([]byte(`{"state":"Pending"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.State != DetectionPending {
		t.Errorf("State = %v", d.State)
	}

	if err := json.Unmarshal([]byte(`{"state":"bogus"}`), &d); err == nil {
		t.Error("Expected error for unknown state")
	}
}
