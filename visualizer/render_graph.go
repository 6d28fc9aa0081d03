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
	"bytes"
	"fmt"

	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// dotGraphHtml embeds a dot graph into a page rendering it in the browser.
const dotGraphHtml = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%[1]s</title>

    <script>
        const dot = ` + "`%[2]s`" + `;
    </script>
</head>

<body>
    <h1>%[1]s</h1>
    <div id="graph"></div>
    <script type="module">
        import { Graphviz } from "https://cdn.jsdelivr.net/npm/@hpcc-js/wasm/dist/index.js";
        if (Graphviz) {
            const graphviz = await Graphviz.load();
            const svg = graphviz.layout(dot, "svg", "dot");
            document.getElementById("graph").innerHTML = svg;
        }
    </script>
</body>
</html>
`

// renderDotGraph lays out the graph and embeds it into an HTML page.
func renderDotGraph(title string, g *graphviz.Graphviz, graph *cgraph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := g.Render(graph, graphviz.XDOT, &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(dotGraphHtml, title, buf.String()), nil
}

// kernelColor distinguishes the kernels in the plan graph.
func kernelColor(m summation.Method) string {
	switch m {
	case summation.Spectral:
		return "indianred"
	case summation.Bivariate:
		return "gray"
	default:
		return "green"
	}
}

// printPlanInDotty renders the steps of a summation plan in dotty format.
// Operands are drawn as boxes, intermediate sums as ellipses and edges carry
// the kernel of the step.
func printPlanInDotty(title string, steps []summation.Step) (out string, err error) {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return "", fmt.Errorf("printPlanInDotty: failed to create graph. Error: %v", err)
	}
	defer func() {
		err = errors.CombineErrors(err, graph.Close())
		err = errors.CombineErrors(err, g.Close())
	}()

	operands := map[int]*cgraph.Node{}
	operand := func(i, width int) (*cgraph.Node, error) {
		if n, found := operands[i]; found {
			return n, nil
		}
		n, err := graph.CreateNode(fmt.Sprintf("x%d", i))
		if err != nil {
			return nil, err
		}
		n.SetShape(cgraph.BoxShape)
		n.SetLabel(fmt.Sprintf("X%d [%d]", i+1, width))
		operands[i] = n
		return n, nil
	}
	edge := func(from, to *cgraph.Node, kernel summation.Method) error {
		e, err := graph.CreateEdge("", from, to)
		if err != nil {
			return err
		}
		e.SetLabel(kernel.String())
		e.SetColor(kernelColor(kernel))
		return nil
	}

	var acc *cgraph.Node
	for i, s := range steps {
		result, err := graph.CreateNode(fmt.Sprintf("s%d", i))
		if err != nil {
			return "", fmt.Errorf("printPlanInDotty: failed to create node for step %d. Error: %v", i, err)
		}
		if s.IsPower() {
			result.SetLabel(fmt.Sprintf("%d x X%d [%d]", s.Count, s.Operand+1, s.Result))
			// the plain variable is drawn next to its power
			leaf, err := graph.CreateNode(fmt.Sprintf("t%d", s.Operand))
			if err != nil {
				return "", fmt.Errorf("printPlanInDotty: failed to create node for term %d. Error: %v", s.Operand, err)
			}
			leaf.SetShape(cgraph.BoxShape)
			leaf.SetLabel(fmt.Sprintf("X%d [%d]", s.Operand+1, s.Left))
			if err := edge(leaf, result, s.Kernel); err != nil {
				return "", fmt.Errorf("printPlanInDotty: failed to create edge for step %d. Error: %v", i, err)
			}
			operands[s.Operand] = result
			continue
		}

		result.SetLabel(fmt.Sprintf("[%d]", s.Result))
		left := acc
		if left == nil {
			if left, err = operand(0, s.Left); err != nil {
				return "", fmt.Errorf("printPlanInDotty: failed to create node for operand 0. Error: %v", err)
			}
		}
		right, err := operand(s.Operand, s.Right)
		if err != nil {
			return "", fmt.Errorf("printPlanInDotty: failed to create node for operand %d. Error: %v", s.Operand, err)
		}
		if err := edge(left, result, s.Kernel); err != nil {
			return "", fmt.Errorf("printPlanInDotty: failed to create edge for step %d. Error: %v", i, err)
		}
		if err := edge(right, result, s.Kernel); err != nil {
			return "", fmt.Errorf("printPlanInDotty: failed to create edge for step %d. Error: %v", i, err)
		}
		acc = result
	}
	if acc != nil {
		acc.SetColor("red")
	}

	txt, err := renderDotGraph(title, g, graph)
	if err != nil {
		return "", fmt.Errorf("printPlanInDotty: failed to render. Error: %v", err)
	}
	return txt, nil
}

// PlanHtml renders a summation plan as an HTML page.
func PlanHtml(title string, steps []summation.Step) (string, error) {
	if len(steps) == 0 {
		return "", errors.New("summation plan has no steps")
	}
	return printPlanInDotty(title, steps)
}
