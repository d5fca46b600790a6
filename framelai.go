// Package framelai translates the text of design frames using AI providers.
//
// A Session owns an in-memory collection of frames, tracks which frames are
// selected, detects the source language of the selected text whenever the
// selection or content changes, and translates every selected text element
// concurrently, merging the results back by element ID.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/framelai"
//	    "github.com/ZaguanLabs/framelai/frameio"
//	    "github.com/ZaguanLabs/framelai/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    s, err := framelai.NewSession(frameio.DemoFrames(), p, p)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer s.Close()
//
//	    _ = s.Toggle("frame1", true)
//	    s.Wait() // source language detection runs in the background
//
//	    result, err := s.Translate(context.Background(), "es")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Translated) // 3
//	}
package framelai
