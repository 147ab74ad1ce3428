package pkg

import "errors"

var ErrConfigMissing = errors.New("config file missing")
var ErrConfigParse = errors.New("config file could not be parsed")
var ErrResourceFileMissing = errors.New("resource file missing")
var ErrResourceFileIO = errors.New("resource file read/write failed")
var ErrSearchInvocation = errors.New("search utility invocation failed")
var ErrNoProjectRoot = errors.New("no project root found")
