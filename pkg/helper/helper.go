package helper

import (
	"runtime"
	"strings"
)

// GetFuncName returns the short name of the calling function, e.g. "(*BookService).TopAuthor".
func GetFuncName() string {
	pc, _, _, _ := runtime.Caller(1)
	name := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return name
}
