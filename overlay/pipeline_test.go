package overlay

import (
	"errors"
	"testing"

	"github.com/kirides/d3doverlay/gfx"
	"github.com/kirides/d3doverlay/internal/gfxtest"
)

var pipelineKinds = []string{"VertexShader", "PixelShader", "InputLayout", "RasterizerState", "DepthStencilState"}

func TestNewPipeline(t *testing.T) {
	rec := gfxtest.NewRecorder()
	sc := gfxtest.NewSwapChain(rec, 64, 64)

	p, err := NewPipeline(sc.Device, gfxtest.Compiler{Rec: rec}, VertexShader, PixelShader)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	for _, kind := range pipelineKinds {
		if n := rec.Live(kind); n != 1 {
			t.Errorf("live %s = %d, want 1", kind, n)
		}
	}

	ctx := sc.Device.Context
	rec.Reset()
	p.Bind(ctx)
	if ctx.VS == nil || ctx.PS == nil || ctx.Layout == nil {
		t.Fatal("Bind() left a stage unset")
	}
	if ctx.Rasterizer != nil || ctx.Topology != gfx.TopologyUndefined {
		t.Fatal("Bind() touched rasterizer or topology state")
	}
	if len(rec.Calls) != 3 {
		t.Fatalf("Bind() calls = %v", rec.Calls)
	}

	p.Release()
	for _, kind := range pipelineKinds {
		if n := rec.Live(kind); n != 0 {
			t.Errorf("live %s after Release = %d", kind, n)
		}
	}
	// Releasing twice is harmless.
	p.Release()
	for _, kind := range pipelineKinds {
		if n := rec.Released(kind); n != 1 {
			t.Errorf("%s released %d times", kind, n)
		}
	}
}

func TestNewPipelineFailure(t *testing.T) {
	steps := []string{
		"Compile VSMain",
		"Compile PSMain",
		"CreateVertexShader",
		"CreatePixelShader",
		"CreateInputLayout",
		"CreateRasterizerState",
		"CreateDepthStencilState",
	}
	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			rec := gfxtest.NewRecorder()
			sc := gfxtest.NewSwapChain(rec, 64, 64)
			rec.Fail(step, nil)

			p, err := NewPipeline(sc.Device, gfxtest.Compiler{Rec: rec}, VertexShader, PixelShader)
			if p != nil {
				t.Fatal("NewPipeline() returned a partial pipeline")
			}
			if !errors.Is(err, gfx.ErrCreation) || !errors.Is(err, gfxtest.ErrInjected) {
				t.Fatalf("NewPipeline() error = %v", err)
			}
			for _, kind := range pipelineKinds {
				if n := rec.Live(kind); n != 0 {
					t.Errorf("%d %s leaked", n, kind)
				}
			}
		})
	}
}

func TestShaderAssets(t *testing.T) {
	for _, s := range []ShaderSource{VertexShader, PixelShader} {
		if len(s.Source) == 0 {
			t.Errorf("%s: empty source", s.EntryPoint)
		}
	}
	if VertexShader.EntryPoint != "VSMain" || VertexShader.Target != "vs_5_0" {
		t.Errorf("vertex shader = %s %s", VertexShader.EntryPoint, VertexShader.Target)
	}
	if PixelShader.EntryPoint != "PSMain" || PixelShader.Target != "ps_5_0" {
		t.Errorf("pixel shader = %s %s", PixelShader.EntryPoint, PixelShader.Target)
	}
}
