package sim

import "github.com/san-kum/circsim/internal/dynamo"

// integrateCycle fills series from its first volume row. The first pressure
// row uses the relaxed ventricle (t = 0); each later row is recomputed from
// the stepped volumes at the step's end time.
func (s *Simulator) integrateCycle(series *Series, grid TimeGrid, cycle int, validate bool) error {
	s.model.Pressures(series.Pressures[0], series.Volumes[0], grid.Times[0])

	for i := 1; i < grid.Len(); i++ {
		t := grid.Times[i]
		next := s.integrator.Step(s.model, series.Volumes[i-1], series.Pressures[i-1], grid.Times[i-1], grid.Step)
		copy(series.Volumes[i], next)

		if validate && !series.Volumes[i].IsValid() {
			return &dynamo.SimulationError{
				Cycle:   cycle,
				Step:    i,
				Time:    t,
				State:   series.Volumes[i].Clone(),
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		s.model.Pressures(series.Pressures[i], series.Volumes[i], t)
	}
	return nil
}
