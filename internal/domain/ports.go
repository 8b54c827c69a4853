package domain

// Generator produces text from a prompt via an external language model.
// Implementations must be safe to call synchronously; the composer treats any
// error as an empty result and falls back, so failures never crash a run.
type Generator interface {
	Generate(system, prompt string, temperature float64, maxTokens int) (string, error)
}

// Publisher posts final text to the social platform. A nil/empty id with a
// non-nil error means the attempt failed and must not be recorded.
type Publisher interface {
	PostText(text string) (string, error)
	PostTextWithMedia(text, imagePath string) (string, error)
}

// Renderer overlays post text on an image template and returns the image path
// plus a content hash of the rendered media.
type Renderer interface {
	Render(text string) (path string, contentHash string, err error)
}
