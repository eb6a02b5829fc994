package internalerr

import "errors"

// Sentinel errors for the analysis pipeline
var (
	ErrLoad          = errors.New("load failed")
	ErrAnnotation    = errors.New("annotation failed")
	ErrVectorization = errors.New("vectorization failed")
	ErrFit           = errors.New("fit failed")
	ErrInvalidConfig = errors.New("invalid configuration")
)
