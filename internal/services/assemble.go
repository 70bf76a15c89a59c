package services

import (
	"errors"
	"fmt"

	"courier-route-service/internal/domain"
)

// AssembleRoute stitches per-leg shortest paths into one continuous node
// walk for a courier, eliding the junction node duplicated at each leg
// boundary. The result starts and ends at the depot, passes every visit's
// node in order, and its total cost equals the sum of leg costs exactly
// (no hidden detours).
func AssembleRoute(
	courier int,
	visits []domain.Destination,
	legs []domain.Leg,
	depot domain.NodeID,
) (domain.CourierRoute, error) {
	if len(legs) == 0 {
		return domain.CourierRoute{}, errors.New("assemble route: no legs")
	}
	if legs[0].From != depot {
		return domain.CourierRoute{}, fmt.Errorf(
			"assemble route: first leg starts at %q, not depot %q",
			string(legs[0].From), string(depot),
		)
	}
	if legs[len(legs)-1].To != depot {
		return domain.CourierRoute{}, fmt.Errorf(
			"assemble route: last leg ends at %q, not depot %q",
			string(legs[len(legs)-1].To), string(depot),
		)
	}

	total := 0.0
	path := make([]domain.NodeID, 0, len(legs)*2)
	for i, leg := range legs {
		if len(leg.Path) == 0 {
			return domain.CourierRoute{}, fmt.Errorf("assemble route: leg %d has empty path", i)
		}
		if leg.Path[0] != leg.From || leg.Path[len(leg.Path)-1] != leg.To {
			return domain.CourierRoute{}, fmt.Errorf(
				"assemble route: leg %d path endpoints %q..%q do not match leg %q -> %q",
				i, string(leg.Path[0]), string(leg.Path[len(leg.Path)-1]), string(leg.From), string(leg.To),
			)
		}
		if i > 0 && legs[i-1].To != leg.From {
			return domain.CourierRoute{}, fmt.Errorf(
				"assemble route: leg %d starts at %q but previous leg ended at %q",
				i, string(leg.From), string(legs[i-1].To),
			)
		}

		if i == 0 {
			path = append(path, leg.Path...)
		} else {
			// The leg's first node is the previous leg's last node.
			path = append(path, leg.Path[1:]...)
		}
		total += leg.Cost
	}

	return domain.CourierRoute{
		Courier:   courier,
		Visits:    visits,
		Path:      path,
		TotalCost: total,
	}, nil
}
