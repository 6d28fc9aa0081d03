// Copyright 2025 Sonic Labs
// This file is part of Drvsum, a toolkit for sums of discrete random variables
//
// Drvsum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Drvsum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Drvsum. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"fmt"
	"sync"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/report"
	"github.com/0xsoniclabs/drvsum/summation"
)

// View is a computed distribution together with the plan that produced it.
type View struct {
	Title string
	PMF   *pmf.PMF
	Plan  []summation.Step
}

type viewState struct {
	title   string
	pmf     *pmf.PMF
	plan    []summation.Step
	summary string // rendered summary table
	graph   string // rendered plan page; empty without a plan
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(view *View) error {
	if view == nil {
		return fmt.Errorf("visualizer: view is nil")
	}
	derived, err := buildViewState(view)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(view *View) (*viewState, error) {
	if view.PMF == nil {
		return nil, fmt.Errorf("visualizer: distribution is nil")
	}
	title := view.Title
	if title == "" {
		title = "Distribution"
	}
	state := &viewState{
		title:   title,
		pmf:     view.PMF,
		plan:    view.Plan,
		summary: report.Summary(title, view.PMF, report.DefaultOptions()),
	}
	if len(view.Plan) > 0 {
		graph, err := printPlanInDotty(title+": Summation Plan", view.Plan)
		if err != nil {
			return nil, fmt.Errorf("visualizer: render plan: %w", err)
		}
		state.graph = graph
	}
	return state, nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: distribution not initialised")
	}
	return currentState, nil
}
