package session

import (
	"github.com/dmorgan81/pollinate/internal/console"
	"github.com/dmorgan81/pollinate/internal/handler"
	"github.com/dmorgan81/pollinate/internal/image"
)

func report(c *console.Console, out handler.Outcome) {
	if out.Err != nil {
		switch image.KindOf(out.Err) {
		case image.KindTimeout:
			c.Println("\nError: image generation timed out (over 60 seconds), please retry!")
		case image.KindHTTP:
			c.Printf("\nHTTP error (the API key or model may be wrong): %v\n", out.Err)
		case image.KindConnection:
			c.Println("\nError: network connection failed, please check your network!")
		default:
			c.Printf("\nUnknown error: %v\n", out.Err)
		}
		return
	}

	c.Println("\nImage generated and saved!")
	c.Printf("Saved to: %s\n", out.Path)
	for _, m := range out.Mirrors {
		if m.Err != nil {
			c.Printf("Warning: mirror upload failed: %v\n", m.Err)
			continue
		}
		c.Printf("Mirrored to: %s\n", m.Location)
	}
	if out.URL != "" {
		c.Printf("You can also open it in a browser: %s\n", out.URL)
	}
}
