package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-demo/common"
)

const testCameraStruct = "struct CameraUniform {\n    view_proj: mat4x4<f32>,\n};\n"

func newTestPreProcessor() PreProcessor {
	return NewPreProcessor(WithStruct(AnnotationArgCamera, testCameraStruct, "CameraUniform"))
}

func TestPreProcessor_IncludeAndGroup(t *testing.T) {
	p := newTestPreProcessor()
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"fn f() {}",
	}, "\n")

	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if !strings.Contains(out, "struct CameraUniform") {
		t.Errorf("include not expanded:\n%s", out)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Errorf("group declaration not generated:\n%s", out)
	}
	if !strings.Contains(out, "fn f() {}") {
		t.Error("plain source line dropped")
	}
	if strings.Contains(out, annotationPrefix) {
		t.Error("annotation left in output")
	}

	decls := p.Declarations()
	if len(decls) != 1 || *decls[0].Group != 0 || *decls[0].Binding != 0 || decls[0].Args[2] != AnnotationArgCamera {
		t.Errorf("Declarations() = %+v", decls)
	}
}

func TestPreProcessor_IncludeOnce(t *testing.T) {
	p := newTestPreProcessor()
	out, err := p.Process("//@oxy:include camera\n//@oxy:include camera")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "struct CameraUniform"); n != 1 {
		t.Errorf("struct included %d times, want 1", n)
	}
}

func TestPreProcessor_DeclarationsReset(t *testing.T) {
	p := newTestPreProcessor()
	if _, err := p.Process("//@oxy:group 0 0 storage_uniform camera camera"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Process("fn f() {}"); err != nil {
		t.Fatal(err)
	}
	if len(p.Declarations()) != 0 {
		t.Errorf("Declarations() = %v after a source without groups", p.Declarations())
	}
}

func TestPreProcessor_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "//@oxy:"},
		{"unknown type", "//@oxy:texture 0"},
		{"include arity", "//@oxy:include"},
		{"unknown include", "//@oxy:include light"},
		{"group arity", "//@oxy:group 0 0 storage_uniform camera"},
		{"bad group", "//@oxy:group x 0 storage_uniform camera camera"},
		{"negative binding", "//@oxy:group 0 -1 storage_uniform camera camera"},
		{"bad address space", "//@oxy:group 0 0 push_constant camera camera"},
		{"unknown struct", "//@oxy:group 0 0 storage_uniform light light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPreProcessor().Process(tt.src)
			if !common.IsKind(err, common.ErrShaderCompilation) {
				t.Errorf("Process(%q) error = %v, want ShaderCompilation", tt.src, err)
			}
		})
	}
}

func TestParseAnnotation_IgnoresNonComments(t *testing.T) {
	a, err := parseAnnotation(`let s = "@oxy:include camera";`, 1)
	if a != nil || err != nil {
		t.Errorf("parseAnnotation() = %v, %v for a non-comment line", a, err)
	}
}
