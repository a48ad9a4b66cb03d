package analysis

import "errors"

// ErrEmptyResume is returned when the resume text is blank.
var ErrEmptyResume = errors.New("resume text is empty")

// ErrEmptyJobDescription is returned when the job description is blank.
var ErrEmptyJobDescription = errors.New("job description is empty")

// ErrLearningUnavailable is returned by LearningReport when the service was
// built without an embedder or an example store.
var ErrLearningUnavailable = errors.New("learning requires an embedder and an example store")
