package renderer

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
)

// drawShaderSource is the colored-mesh shader before includes are expanded.
//
//go:embed assets/draw.wgsl
var drawShaderSource string

// Shader entry points in assets/draw.wgsl.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// includeRegistry maps @include names to the WGSL struct sources owned by other packages,
// so the Go layout and the shader layout come from one definition.
var includeRegistry = map[string]string{
	"vertex":       model.GPUVertexSource,
	"draw_uniform": camera.GPUDrawUniformSource,
}

var includePattern = regexp.MustCompile(`(?m)^[ \t]*@include\(([A-Za-z0-9_]+)\)[ \t]*$`)

// ComposeShader replaces every @include(name) line in source with the registered struct source.
//
// Parameters:
//   - source: WGSL with @include directives
//
// Returns:
//   - string: WGSL ready for shader module creation
//   - error: error if a directive names an unknown include
func ComposeShader(source string) (string, error) {
	var missing []string
	out := includePattern.ReplaceAllStringFunc(source, func(line string) string {
		name := includePattern.FindStringSubmatch(line)[1]
		src, ok := includeRegistry[name]
		if !ok {
			missing = append(missing, name)
			return line
		}
		return strings.TrimRight(src, "\n")
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown shader include %s", strings.Join(missing, ", "))
	}
	return out, nil
}
