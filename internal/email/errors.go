package email

import "errors"

// ErrNoSession is returned when a dialog operation arrives while the email
// dialog is closed.
var ErrNoSession = errors.New("no email session open")
