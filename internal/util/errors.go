package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrFormNotFound        = errors.New("form not found")
	ErrFormNotPublished    = errors.New("form not published or outside its validity window")
	ErrFormPublished       = errors.New("published form cannot be edited")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrNotReviewed         = errors.New("submission has no correction record yet")
	ErrNothingToCorrect    = errors.New("no question was marked incorrect")
	ErrCourseNotFound      = errors.New("course not found")
	ErrAlreadyRequested    = errors.New("enrollment request already pending for this course")
	ErrEnrollmentNotFound  = errors.New("enrollment request not found")
	ErrEnrollmentDecided   = errors.New("enrollment request already decided")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteNotAccepted    = errors.New("quote must be accepted before a contract is issued")
	ErrInvalidStatusChange = errors.New("invalid status transition")
)
