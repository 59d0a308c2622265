package store

type FailureType string

const (
	FailureTypeNoTranscript FailureType = "no_transcript" // Every acquisition method came up empty, data is the video URL.
	FailureTypeSummarize    FailureType = "summarize"     // Every summary provider failed, data is the video ID.
)

type TranscriptType string

const (
	TranscriptManual     TranscriptType = "manual"     // Human authored captions.
	TranscriptAuto       TranscriptType = "auto"       // YouTube speech recognition.
	TranscriptTranslated TranscriptType = "translated" // Machine translated from another track.
)
