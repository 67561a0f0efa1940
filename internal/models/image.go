package models

import "image"

// CapturedImage is identified by its filename
type CapturedImage struct {
	Filename  string
	Timestamp string
	Size      int64 // bytes, 0 when the backend did not report it
}

type AnalysisPhase int

const (
	AnalysisIdle AnalysisPhase = iota
	AnalysisLoading
	AnalysisDone
	AnalysisFailed
)

// Analysis is the result area of the image modal
type Analysis struct {
	Phase AnalysisPhase
	Text  string
}

// Preview is the downscaled thumbnail shown in the image modal
type Preview struct {
	Filename string
	URL      string // where the full image can be opened
	Loading  bool
	Image    image.Image
	Err      string
}
