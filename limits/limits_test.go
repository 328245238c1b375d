package limits

import (
	"errors"
	"testing"
)

// TestValidateDimensions tests the default dimension validation
func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr error
	}{
		{name: "smallest frame", width: 1, height: 1, wantErr: nil},
		{name: "vga", width: 640, height: 480, wantErr: nil},
		{name: "odd sizes", width: 33, height: 17, wantErr: nil},
		{name: "max square", width: MaxFrameDimension, height: MaxFrameDimension, wantErr: nil},
		{name: "zero width", width: 0, height: 480, wantErr: ErrInvalidDimensions},
		{name: "zero height", width: 640, height: 0, wantErr: ErrInvalidDimensions},
		{name: "negative width", width: -2, height: 2, wantErr: ErrInvalidDimensions},
		{name: "too wide", width: MaxFrameDimension + 1, height: 2, wantErr: ErrDimensionsTooLarge},
		{name: "too tall", width: 2, height: MaxFrameDimension + 1, wantErr: ErrDimensionsTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDimensions(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

// TestValidateDimensionsWithLimit verifies a custom maximum is honored
func TestValidateDimensionsWithLimit(t *testing.T) {
	if err := ValidateDimensionsWithLimit(1280, 720, 1280); err != nil {
		t.Errorf("expected 1280x720 to pass with limit 1280, got %v", err)
	}
	err := ValidateDimensionsWithLimit(1920, 1080, 1280)
	if !errors.Is(err, ErrDimensionsTooLarge) {
		t.Errorf("expected ErrDimensionsTooLarge, got %v", err)
	}
}

// TestValidateStride tests stride validation against the visible row size
func TestValidateStride(t *testing.T) {
	tests := []struct {
		name     string
		stride   int
		rowBytes int
		wantErr  error
	}{
		{name: "exact", stride: 16, rowBytes: 16, wantErr: nil},
		{name: "padded", stride: 64, rowBytes: 16, wantErr: nil},
		{name: "short", stride: 15, rowBytes: 16, wantErr: ErrInvalidStride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStride(tt.stride, tt.rowBytes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStride(%d, %d) error = %v, wantErr %v", tt.stride, tt.rowBytes, err, tt.wantErr)
			}
		})
	}
}

// TestAlignment tests alignment validation and stride rounding
func TestAlignment(t *testing.T) {
	for _, a := range []int{1, 2, 16, 64, MaxStrideAlignment} {
		if err := ValidateAlignment(a); err != nil {
			t.Errorf("ValidateAlignment(%d) = %v, want nil", a, err)
		}
	}
	for _, a := range []int{0, -1, 3, 48, MaxStrideAlignment * 2} {
		if err := ValidateAlignment(a); !errors.Is(err, ErrInvalidAlignment) {
			t.Errorf("ValidateAlignment(%d) = %v, want ErrInvalidAlignment", a, err)
		}
	}

	cases := []struct{ row, align, want int }{
		{row: 17, align: 1, want: 17},
		{row: 17, align: 16, want: 32},
		{row: 32, align: 16, want: 32},
		{row: 1, align: 64, want: 64},
	}
	for _, c := range cases {
		if got := AlignStride(c.row, c.align); got != c.want {
			t.Errorf("AlignStride(%d, %d) = %d, want %d", c.row, c.align, got, c.want)
		}
	}
}
