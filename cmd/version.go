package cmd

// Version is set at build time with -ldflags "-X formfiller/cmd.Version=...".
var Version = "0.1.0"
