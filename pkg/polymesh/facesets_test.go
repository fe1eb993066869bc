package polymesh

import (
	"testing"
)

func TestNewFacesets(t *testing.T) {
	fs, err := NewFacesets([][]int{{0, 2}, {}, {1, 2}})
	if err != nil {
		t.Fatalf("NewFacesets() error = %v", err)
	}

	tests := []struct {
		face int
		want int
	}{
		{0, 0},
		{1, 2},
		{2, 0}, // first assignment wins
		{3, 1}, // unlisted faces go to the empty group
		{99, 1},
	}
	for _, tt := range tests {
		if got := fs.FacesetOf(tt.face); got != tt.want {
			t.Errorf("FacesetOf(%d) = %d, want %d", tt.face, got, tt.want)
		}
	}
	if fs.Count() != 3 {
		t.Errorf("Count() = %d, want 3", fs.Count())
	}
	if fs.maxFace() != 2 {
		t.Errorf("maxFace() = %d, want 2", fs.maxFace())
	}
}

func TestNewFacesets_NoEmptyGroup(t *testing.T) {
	fs, err := NewFacesets([][]int{{1}})
	if err != nil {
		t.Fatalf("NewFacesets() error = %v", err)
	}
	if got := fs.FacesetOf(0); got != ImplicitFaceset {
		t.Errorf("FacesetOf(0) = %d, want %d", got, ImplicitFaceset)
	}
	if got := fs.FacesetOf(1); got != 0 {
		t.Errorf("FacesetOf(1) = %d, want 0", got)
	}
}

func TestNewFacesets_NegativeFace(t *testing.T) {
	if _, err := NewFacesets([][]int{{0, -1}}); err == nil {
		t.Error("NewFacesets() with a negative face should fail")
	}
}

func TestFacesetsFromAssignment(t *testing.T) {
	fs := FacesetsFromAssignment([]int{2, -1, 0})
	want := []int{2, ImplicitFaceset, 0, ImplicitFaceset}
	for face, w := range want {
		if got := fs.FacesetOf(face); got != w {
			t.Errorf("FacesetOf(%d) = %d, want %d", face, got, w)
		}
	}
	if fs.Count() != 3 {
		t.Errorf("Count() = %d, want 3", fs.Count())
	}
}

func TestFacesets_Nil(t *testing.T) {
	var fs *Facesets
	if got := fs.FacesetOf(5); got != ImplicitFaceset {
		t.Errorf("FacesetOf() on nil = %d, want %d", got, ImplicitFaceset)
	}
	if fs.Count() != 0 {
		t.Errorf("Count() on nil = %d, want 0", fs.Count())
	}
}
