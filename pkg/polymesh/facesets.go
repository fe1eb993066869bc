package polymesh

import "fmt"

// ImplicitFaceset is the faceset id of faces without an explicit assignment
// when no default group exists.
const ImplicitFaceset = -1

const unassigned = -2

// Facesets maps face indices to faceset ids. A nil *Facesets puts every face
// in the implicit faceset.
type Facesets struct {
	ids       []int
	defaultID int
	count     int
}

// NewFacesets builds a table from face groups: group i lists the faces of
// faceset i. Faces not listed anywhere go to the first empty group, or to
// ImplicitFaceset when every group is non-empty. A face listed in several
// groups keeps its first assignment.
func NewFacesets(groups [][]int) (*Facesets, error) {
	fs := &Facesets{defaultID: ImplicitFaceset, count: len(groups)}

	maxFace := -1
	for gi, g := range groups {
		if len(g) == 0 && fs.defaultID == ImplicitFaceset {
			fs.defaultID = gi
		}
		for _, f := range g {
			if f < 0 {
				return nil, fmt.Errorf("%w: faceset %d lists face %d", ErrInvalidArgument, gi, f)
			}
			maxFace = max(maxFace, f)
		}
	}

	fs.ids = make([]int, maxFace+1)
	for i := range fs.ids {
		fs.ids[i] = unassigned
	}
	for gi, g := range groups {
		for _, f := range g {
			if fs.ids[f] == unassigned {
				fs.ids[f] = gi
			}
		}
	}
	return fs, nil
}

// FacesetsFromAssignment builds a table from a per-face id list. Negative ids
// and faces past the end of ids belong to ImplicitFaceset.
func FacesetsFromAssignment(ids []int) *Facesets {
	fs := &Facesets{defaultID: ImplicitFaceset, ids: make([]int, len(ids))}
	for i, id := range ids {
		if id < 0 {
			fs.ids[i] = unassigned
			continue
		}
		fs.ids[i] = id
		fs.count = max(fs.count, id+1)
	}
	return fs
}

// FacesetOf returns the faceset id of face.
func (fs *Facesets) FacesetOf(face int) int {
	if fs == nil {
		return ImplicitFaceset
	}
	if face >= 0 && face < len(fs.ids) && fs.ids[face] != unassigned {
		return fs.ids[face]
	}
	return fs.defaultID
}

// Count returns the number of explicit facesets.
func (fs *Facesets) Count() int {
	if fs == nil {
		return 0
	}
	return fs.count
}

// maxFace returns the largest face index the table mentions, or -1.
func (fs *Facesets) maxFace() int {
	if fs == nil {
		return -1
	}
	for i := len(fs.ids) - 1; i >= 0; i-- {
		if fs.ids[i] != unassigned {
			return i
		}
	}
	return -1
}
