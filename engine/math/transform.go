package math

func TransformFromPositionRotation(position Vec3, rotation Quaternion) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, NewVec3One())
	t.Local = NewMat4Identity()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns translation * rotation * scale, rebuilding it when dirty.
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			tr := NewMat4Translation(t.Position).Mul(t.Rotation.ToMat4())
			t.Local = tr.Mul(NewMat4Scale(t.Scale))
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}
