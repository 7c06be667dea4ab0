// Package shaders discovers GLSL sources and compiles them to SPIR-V with
// the SDK's glslc.
package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"photon/internal/logging"
)

// Stage is the pipeline stage a source file targets.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// stageExtensions maps the recognised extensions to their stage.
var stageExtensions = map[string]Stage{
	".vert": StageVertex,
	".frag": StageFragment,
}

// StageOf returns the stage for path, or false if the extension is not one
// of the recognised shader extensions.
func StageOf(path string) (Stage, bool) {
	stage, ok := stageExtensions[filepath.Ext(path)]
	return stage, ok
}

// ShaderFile is a discovered shader source.
type ShaderFile struct {
	Path  string
	Stage Stage
}

// OutputPath returns the SPIR-V path written next to the source.
func (f ShaderFile) OutputPath() string {
	return strings.TrimSuffix(f.Path, filepath.Ext(f.Path)) + ".spv"
}

// Discover lists the shader sources directly inside dir. Subdirectories and
// dotfiles are not searched. A missing directory yields no files and no error. Order
// follows the directory listing.
func Discover(dir string) ([]ShaderFile, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.ShadersWarn("shader directory %s does not exist", abs)
			return []ShaderFile{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", abs, err)
	}

	files := []ShaderFile{}
	for _, entry := range entries {
		// Hidden files, including a bare ".vert", are not sources.
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		stage, ok := StageOf(entry.Name())
		if !ok {
			continue
		}
		if !entry.Type().IsRegular() {
			// Follow symlinks, skip anything that is not a file.
			info, err := os.Stat(filepath.Join(abs, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, ShaderFile{
			Path:  filepath.Join(abs, entry.Name()),
			Stage: stage,
		})
	}

	logging.ShadersDebug("Discovered %d shader(s) in %s", len(files), abs)
	return files, nil
}
