package frameio

import "github.com/ZaguanLabs/framelai"

// DemoFrames returns the built-in sample collection used when no frame file
// is configured.
func DemoFrames() framelai.Collection {
	return framelai.Collection{
		{
			ID:   "frame1",
			Name: "Onboarding Screen",
			Texts: []framelai.TextElement{
				{ID: "t1-1", Content: "Welcome to Figma Translator"},
				{ID: "t1-2", Content: "Select frames to get started."},
				{ID: "t1-3", Content: "Next"},
			},
		},
		{
			ID:   "frame2",
			Name: "Dashboard View",
			Texts: []framelai.TextElement{
				{ID: "t2-1", Content: "Your Projects"},
				{ID: "t2-2", Content: "Create a new project to continue."},
				{ID: "t2-3", Content: "Recent Activity"},
				{ID: "t2-4", Content: "You have no recent activity."},
			},
		},
		{
			ID:   "frame3",
			Name: "Settings Page",
			Texts: []framelai.TextElement{
				{ID: "t3-1", Content: "Profile Settings"},
				{ID: "t3-2", Content: "Username"},
				{ID: "t3-3", Content: "Email Address"},
				{ID: "t3-4", Content: "Change Password"},
				{ID: "t3-5", Content: "Save Changes"},
			},
		},
		{
			ID:   "frame4",
			Name: "Confirmation Modal",
			Texts: []framelai.TextElement{
				{ID: "t4-1", Content: "Are you sure?"},
				{ID: "t4-2", Content: "This action cannot be undone."},
				{ID: "t4-3", Content: "Confirm"},
				{ID: "t4-4", Content: "Cancel"},
			},
		},
	}
}
