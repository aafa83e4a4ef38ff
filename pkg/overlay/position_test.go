package overlay

import (
	"strings"
	"testing"

	"github.com/skyhookui/skyhook/pkg/errors"
)

func TestValidatePositions(t *testing.T) {
	valid := Position{OriginX: HStart, OriginY: VBottom, OverlayX: HStart, OverlayY: VTop}

	tests := []struct {
		name      string
		positions []Position
		wantCode  errors.Code
	}{
		{
			name:      "valid list",
			positions: []Position{valid},
		},
		{
			name:     "empty list",
			wantCode: errors.ErrCodeNoPositions,
		},
		{
			name: "invalid originX",
			positions: []Position{
				valid,
				{OriginX: "left", OriginY: VTop, OverlayX: HStart, OverlayY: VTop},
			},
			wantCode: errors.ErrCodeInvalidPosition,
		},
		{
			name: "invalid overlayY",
			positions: []Position{
				{OriginX: HStart, OriginY: VTop, OverlayX: HStart, OverlayY: "middle"},
			},
			wantCode: errors.ErrCodeInvalidPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositions(tt.positions)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidatePositions() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("ValidatePositions() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidatePositionsReportsIndex(t *testing.T) {
	positions := []Position{
		{OriginX: HStart, OriginY: VTop, OverlayX: HStart, OverlayY: VTop},
		{OriginX: "bogus", OriginY: VTop, OverlayX: HStart, OverlayY: VTop},
	}
	err := ValidatePositions(positions)
	if err == nil {
		t.Fatal("expected error for invalid literal")
	}
	if !strings.Contains(err.Error(), "position 1") {
		t.Errorf("error %q should name the offending index", err)
	}
}

func TestPositionMirror(t *testing.T) {
	p := Position{OriginX: HStart, OriginY: VBottom, OverlayX: HEnd, OverlayY: VTop}
	m := p.Mirror()

	if m.OriginX != HEnd || m.OverlayX != HStart {
		t.Errorf("Mirror() = %+v, want start/end swapped on X", m)
	}
	if m.OriginY != p.OriginY || m.OverlayY != p.OverlayY {
		t.Errorf("Mirror() changed Y anchors: %+v", m)
	}

	c := Position{OriginX: HCenter, OriginY: VCenter, OverlayX: HCenter, OverlayY: VCenter}
	if got := c.Mirror(); got.OriginX != HCenter || got.OverlayX != HCenter {
		t.Errorf("Mirror() of centered position = %+v, want unchanged", got)
	}
}

func TestEffectiveWeight(t *testing.T) {
	if got := (Position{}).EffectiveWeight(); got != 1 {
		t.Errorf("zero weight should rank as 1, got %v", got)
	}
	if got := (Position{Weight: 2.5}).EffectiveWeight(); got != 2.5 {
		t.Errorf("EffectiveWeight() = %v, want 2.5", got)
	}
}
