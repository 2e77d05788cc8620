package mt

// Request holds parameters for a translation call.
type Request struct {
	// Text is the transcribed source text.
	Text string
	// SourceLanguage and TargetLanguage are registry codes.
	SourceLanguage string
	TargetLanguage string
	// Model is the model identifier from the language spec.
	Model string
	// Device is the resolved compute device ("cpu" or "gpu").
	Device string
}

// Result holds the outcome of a translation call.
type Result struct {
	// Text is the translated text.
	Text string `json:"text"`
	// SourceLanguage and TargetLanguage echo the request codes.
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}
