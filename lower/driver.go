// Copyright (C) 2026 Souffle Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package lower

import (
	"fmt"
	"log"

	"github.com/mmcgr/souffle/dlog"
	"github.com/mmcgr/souffle/ramast"
	"github.com/mmcgr/souffle/symbol"
)

// Driver implements Component D, the stratification driver: given a
// dlog.Program and its precomputed SCC graph, it assembles the full
// ramast.Program — one subroutine per SCC plus a main sequence that
// calls them in topological order — dispatching each SCC's body to
// Component E or F as appropriate.
type Driver struct {
	symbols  *symbol.Table
	poly     *dlog.Polymorphic
	sumTypes *dlog.SumTypes
	functors *dlog.Functors
	opts     Options
	logger   *log.Logger
}

// NewDriver returns a Driver over the given frozen analyses and
// symbol table. symbols is shared with whatever backend eventually
// resolves the ids this Driver's translator interns: it is exactly
// the symbol.Table of spec §6's binary-stable external contract.
func NewDriver(symbols *symbol.Table, poly *dlog.Polymorphic, sumTypes *dlog.SumTypes, functors *dlog.Functors, opts Options) *Driver {
	logger, _ := newSessionLogger()
	return &Driver{symbols: symbols, poly: poly, sumTypes: sumTypes, functors: functors, opts: opts, logger: logger}
}

// Lower runs Components D, E, F, and G over prog and graph, producing
// a complete ramast.Program. graph.Order must already be
// topologically sorted (an upstream analysis's responsibility, not
// recomputed here).
func (d *Driver) Lower(prog *dlog.Program, graph *dlog.SCCGraph) (*ramast.Program, error) {
	out := ramast.NewProgram()
	recursive := make(map[string]bool)
	for _, scc := range graph.Order {
		if scc.Recursive {
			for _, r := range scc.Relations {
				recursive[r.Name] = true
			}
		}
	}
	for _, r := range prog.Relations {
		out.Relations = append(out.Relations, ramast.RelationDecl{
			Name: r.Name, Arity: r.Arity(), Recursive: recursive[r.Name],
		})
	}

	tr := newTranslator(d.symbols, d.poly, d.sumTypes, d.functors)

	var mainStmts []ramast.Statement
	for i, scc := range graph.Order {
		name := fmt.Sprintf("stratum_%d", i)
		d.logger.Printf("lowering %s (recursive=%v, relations=%d)", name, scc.Recursive, len(scc.Relations))

		body, err := d.lowerStratum(tr, prog, scc)
		if err != nil {
			return nil, fmt.Errorf("lower: %s: %w", name, err)
		}

		full, err := d.wrapStratum(name, scc, body)
		if err != nil {
			return nil, err
		}
		out.Subroutines[name] = full
		mainStmts = append(mainStmts, &ramast.Call{Name: name})
	}
	out.Main = &ramast.Sequence{Stmts: mainStmts}
	return out, nil
}

// lowerStratum dispatches one SCC's compute phase to Component E or
// F (spec §4.4 step 2).
func (d *Driver) lowerStratum(tr *translator, prog *dlog.Program, scc *dlog.SCC) (ramast.Statement, error) {
	if scc.Recursive {
		return tr.lowerRecursiveSCC(scc, prog, d.opts)
	}

	var stmts []ramast.Statement
	for _, r := range scc.Relations {
		clauses := prog.Clauses[r.Name]
		if len(clauses) == 0 {
			// A pure input (EDB) relation carries no clauses of its
			// own within this SCC; its Load/Store phase is still
			// driven by wrapStratum.
			continue
		}
		s, err := tr.lowerNonRecursiveClauses(r.Name, clauses)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if len(stmts) == 1 {
		return stmts[0], nil
	}
	return &ramast.Sequence{Stmts: stmts}, nil
}

// wrapStratum assembles the full per-SCC statement per spec §4.4:
// load phase, compute phase (already lowered as body), store phase,
// purge phase, optionally wrapped in profiling statements.
func (d *Driver) wrapStratum(name string, scc *dlog.SCC, body ramast.Statement) (ramast.Statement, error) {
	var stmts []ramast.Statement

	for _, r := range scc.Relations {
		for _, dir := range r.LoadDirectives {
			stmts = append(stmts, &ramast.IO{Rel: r.Name, Dir: directivesToIO(dir)})
		}
	}

	stmts = append(stmts, body)

	for _, r := range scc.Relations {
		for _, dir := range r.StoreDirectives {
			stmts = append(stmts, &ramast.IO{Rel: r.Name, Dir: directivesToIO(dir)})
		}
	}

	for _, r := range scc.Expired {
		stmts = append(stmts, &ramast.Clear{Rel: r.Name})
	}

	var stmt ramast.Statement = &ramast.Sequence{Stmts: stmts}
	if d.opts.Profile {
		stmt = &ramast.LogTimer{Label: name, Inner: stmt}
		for _, r := range scc.Relations {
			stmt = &ramast.LogRelationTimer{Rel: r.Name, Inner: stmt}
		}
	}
	return stmt, nil
}

func directivesToIO(d dlog.Directive) ramast.IODirectives {
	dirs := ramast.IODirectives{}
	for k, v := range d.Values {
		dirs = dirs.Set(k, v)
	}
	return dirs
}
