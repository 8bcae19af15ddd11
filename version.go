package turing

// Version is the library and CLI version.
var Version = "0.3.0"
