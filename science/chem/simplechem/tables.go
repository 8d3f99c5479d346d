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
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/ctessum/sparse"
	"github.com/tealeg/xlsx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

func checkTemperatures(temps []float64) error {
	if len(temps) == 0 {
		return fmt.Errorf("simplechem: no temperatures given for reaction tables")
	}
	for _, T := range temps {
		if !(T > 0) {
			return fmt.Errorf("simplechem: invalid reaction table temperature %g K", T)
		}
	}
	return nil
}

// deltaMoles returns the change in the number of moles of reaction j.
func (m *Mechanism) deltaMoles(j int) float64 {
	dn := 0.
	for _, n := range m.reactions[j].net {
		dn += n.v
	}
	return dn
}

// ReactionTables writes, for every reaction, the rate constant at each of
// the given temperatures [K] and the change in the number of moles.
func (m *Mechanism) ReactionTables(w io.Writer, temps []float64) error {
	if err := checkTemperatures(temps); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprint(tw, "#\treaction\tΔn")
	for _, T := range temps {
		fmt.Fprintf(tw, "\tk(%g K)", T)
	}
	fmt.Fprintln(tw)
	for j, r := range m.reactions {
		fmt.Fprintf(tw, "%d\t%s\t%g", j+1, r.Name, m.deltaMoles(j))
		for _, T := range temps {
			fmt.Fprintf(tw, "\t%.4e", m.kinetics.RateConstant(j, T))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// ReactionTablesXLSX returns the reaction tables as a spreadsheet with
// one row per reaction.
func (m *Mechanism) ReactionTablesXLSX(temps []float64) (*xlsx.File, error) {
	if err := checkTemperatures(temps); err != nil {
		return nil, err
	}
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Reaction tables")
	if err != nil {
		return nil, fmt.Errorf("simplechem: creating spreadsheet: %v", err)
	}
	header := sheet.AddRow()
	for _, h := range []string{"#", "reaction", "dn"} {
		header.AddCell().SetString(h)
	}
	for _, T := range temps {
		header.AddCell().SetString(fmt.Sprintf("k(%g K)", T))
	}
	for j, r := range m.reactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(j + 1)
		row.AddCell().SetString(r.Name)
		row.AddCell().SetFloat(m.deltaMoles(j))
		for _, T := range temps {
			row.AddCell().SetFloat(m.kinetics.RateConstant(j, T))
		}
	}
	return f, nil
}

// ArrheniusPlot returns a plot of log10 of the rate constant of every
// reaction against 1000/T.
func (m *Mechanism) ArrheniusPlot(temps []float64) (*plot.Plot, error) {
	if err := checkTemperatures(temps); err != nil {
		return nil, err
	}
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = m.Name
	p.X.Label.Text = "1000/T [1/K]"
	p.Y.Label.Text = "log10 k"
	for j, r := range m.reactions {
		xy := make(plotter.XYs, len(temps))
		for i, T := range temps {
			xy[i].X = 1000 / T
			xy[i].Y = math.Log10(m.kinetics.RateConstant(j, T))
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, fmt.Errorf("simplechem: plotting reaction %s: %v", r.Name, err)
		}
		l.Color = plotutil.Color(j)
		p.Add(l)
		p.Legend.Add(r.Name, l)
	}
	return p, nil
}

// SparsityPattern returns an n×n array, n being the number of species,
// whose element (i, j) is 1 where the formation rate of species i
// depends on the concentration of species j and 0 elsewhere.
func (m *Mechanism) SparsityPattern() *sparse.DenseArray {
	n := len(m.species)
	p := sparse.ZerosDense(n, n)
	for _, r := range m.reactions {
		for _, net := range r.net {
			for _, o := range r.orders {
				if o.v != 0 {
					p.Set(1, net.i, o.i)
				}
			}
		}
	}
	return p
}

// SparsityPatternAnalysis writes the sparsity pattern of the kinetic
// Jacobian and its number of non-zero elements.
func (m *Mechanism) SparsityPatternAnalysis(w io.Writer) error {
	p := m.SparsityPattern()
	n := len(m.species)
	nnz := floats.Sum(p.Elements)
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprint(tw, "\t")
	for j := range m.species {
		fmt.Fprintf(tw, "%d\t", j+1)
	}
	fmt.Fprintln(tw)
	for i, s := range m.species {
		fmt.Fprintf(tw, "%s\t", s.Name)
		for j := 0; j < n; j++ {
			c := "."
			if p.Get(i, j) != 0 {
				c = "x"
			}
			fmt.Fprintf(tw, "%s\t", c)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "non-zero elements: %d of %d (%.2f%%)\n",
		int(nnz), n*n, 100*nnz/float64(n*n))
	return err
}
