package shaders

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"photon/internal/build"
)

// ErrCompilerNotFound is returned when no compiler binary can be located.
var ErrCompilerNotFound = errors.New("shader compiler not found")

// CompilerName returns the glslc file name for goos.
func CompilerName(goos string) string {
	if goos == "windows" {
		return "glslc.exe"
	}
	return "glslc"
}

// LocateCompiler returns the path of glslc inside sdkRoot.
func LocateCompiler(sdkRoot, goos string) (string, error) {
	if sdkRoot == "" {
		return "", fmt.Errorf("%w: SDK root is not set", ErrCompilerNotFound)
	}

	path := filepath.Join(build.BinDir(sdkRoot, goos), CompilerName(goos))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrCompilerNotFound, path)
	}
	return path, nil
}
