// If you are AI: This file defines the declarative interleave plan and the generic engine
// that walks it. One engine serves every layout; layouts differ only in their plan.

package layout

// Stage is a set of regions read one row each, left to right.
type Stage []int

// Step is a horizontal slot of the output row. It reads its active stage each row and
// switches to the next stage when the active one runs out of rows.
type Step []Stage

// Phase is a sequence of steps that together produce one output row.
// A phase ends when a step runs out of rows in its last stage.
type Phase []Step

// Plan is the ordered list of phases that build one output frame.
type Plan []Phase

// one is a step fed by a single region for the whole phase.
func one(region int) Step {
	return Step{Stage{region}}
}

// sw is a step that moves through stages as each one runs out of rows.
func sw(stages ...Stage) Step {
	return Step(stages)
}

// Regions returns the highest region index referenced by the plan plus one.
func (p Plan) Regions() int {
	n := 0
	for _, phase := range p {
		for _, step := range phase {
			for _, stage := range step {
				for _, r := range stage {
					if r+1 > n {
						n = r + 1
					}
				}
			}
		}
	}
	return n
}

// rowReader yields consecutive fixed-size rows from one region's frame.
type rowReader struct {
	data []byte
	row  int
	off  int
}

// next returns the next row or nil once the frame is exhausted.
func (r *rowReader) next() []byte {
	if r.row <= 0 || r.off+r.row > len(r.data) {
		return nil
	}
	chunk := r.data[r.off : r.off+r.row]
	r.off += r.row
	return chunk
}

// run appends rows to dst following the plan and returns the extended buffer.
// Stage switches persist for the rest of their phase.
func (p Plan) run(readers []rowReader, dst []byte) []byte {
	for _, phase := range p {
		active := make([]int, len(phase))
	rows:
		for {
			for s, step := range phase {
				for {
					complete := true
					for _, region := range step[active[s]] {
						chunk := readers[region].next()
						if chunk == nil {
							complete = false
							break
						}
						dst = append(dst, chunk...)
					}
					if complete {
						break
					}
					if active[s] == len(step)-1 {
						break rows
					}
					active[s]++
				}
			}
		}
	}
	return dst
}
