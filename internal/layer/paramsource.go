// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package layer

// MapParamSource is a ParamSource backed by plain maps, the in-memory
// equivalent of original_source's ParamDict used by tests.
type MapParamSource struct {
	Ints   map[int]int
	Floats map[int]float32
}

func (s MapParamSource) Int(key, def int) int {
	if v, ok := s.Ints[key]; ok {
		return v
	}
	return def
}

func (s MapParamSource) Float(key int, def float32) float32 {
	if v, ok := s.Floats[key]; ok {
		return v
	}
	return def
}
