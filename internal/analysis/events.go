package analysis

import "github.com/san-kum/circsim/internal/circulation"

// ValveEvents holds the sample indices where one valve changes state.
// Opens[i] is the first open sample; Closes[i] is the last open sample
// before the valve shuts.
type ValveEvents struct {
	Valve  circulation.Valve
	Opens  []int
	Closes []int
}

// DetectEvents scans a valve series for state changes of every valve.
func DetectEvents(valves []circulation.Valves) [circulation.NumValves]ValveEvents {
	var events [circulation.NumValves]ValveEvents
	for v := range events {
		events[v].Valve = circulation.Valve(v)
	}

	for i := 1; i < len(valves); i++ {
		for v := 0; v < circulation.NumValves; v++ {
			prev, cur := valves[i-1][v], valves[i][v]
			switch {
			case !prev && cur:
				events[v].Opens = append(events[v].Opens, i)
			case prev && !cur:
				events[v].Closes = append(events[v].Closes, i-1)
			}
		}
	}
	return events
}
