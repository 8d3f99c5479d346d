/*
Copyright © 2026 the laminarSMOKE authors.
This file is part of laminarSMOKE.

laminarSMOKE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

laminarSMOKE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with laminarSMOKE.  If not, see <http://www.gnu.org/licenses/>.
*/

package simplechem

import (
	"math"

	"github.com/laminarsmoke/laminarsmoke"
)

// Kinetics fulfils the laminarsmoke.KineticsMap interface for
// irreversible mass-action reactions.
type Kinetics struct {
	m *Mechanism
}

// NumberOfReactions returns the number of reactions.
func (k *Kinetics) NumberOfReactions() int { return len(k.m.reactions) }

// RateConstant returns the rate constant of reaction j at temperature T.
func (k *Kinetics) RateConstant(j int, T float64) float64 {
	r := k.m.reactions[j]
	return r.A * math.Pow(T, r.B) * math.Exp(-r.Ea/(laminarsmoke.RJkmol*T))
}

// ReactionRates fills q with the rate of progress of every reaction
// [kmol/m³/s].
func (k *Kinetics) ReactionRates(q []float64, T float64, c []float64) {
	for j, r := range k.m.reactions {
		rate := k.RateConstant(j, T)
		for _, o := range r.orders {
			cc := c[o.i]
			if cc <= 0 {
				if o.v > 0 {
					rate = 0
					break
				}
				continue
			}
			rate *= math.Pow(cc, o.v)
		}
		q[j] = rate
	}
}

// FormationRates fills r with the net formation rate of every species
// [kmol/m³/s].
func (k *Kinetics) FormationRates(r []float64, T, p float64, c []float64) {
	for i := range r {
		r[i] = 0
	}
	q := make([]float64, len(k.m.reactions))
	k.ReactionRates(q, T, c)
	for j, rr := range k.m.reactions {
		for _, n := range rr.net {
			r[n.i] += n.v * q[j]
		}
	}
}
