// Package coa builds the chart-of-accounts tree from a flat account list.
package coa

import (
	"sort"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// Node is an account with its position in the chart-of-accounts forest.
type Node struct {
	domain.Account
	Depth    int     `json:"depth"`
	Children []*Node `json:"children"`
}

// BuildHierarchy arranges accounts into a forest of nodes. Accounts whose
// parent is empty or does not resolve within the input become roots.
// Siblings are sorted by code ascending at every level. A visited set
// guards against corrupted parent cycles: accounts trapped in a cycle are
// surfaced as extra roots rather than looping forever, and every account
// appears in the result exactly once.
func BuildHierarchy(accounts []domain.Account) []*Node {
	byID := make(map[string]*Node, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = &Node{Account: acc}
	}

	var roots []*Node
	children := make(map[string][]*Node)
	for _, node := range byID {
		parentID := node.ParentAccountID
		if parentID == "" || byID[parentID] == nil {
			roots = append(roots, node)
			continue
		}
		children[parentID] = append(children[parentID], node)
	}

	visited := make(map[string]bool, len(accounts))
	var attach func(node *Node, depth int)
	attach = func(node *Node, depth int) {
		if visited[node.AccountID] {
			return
		}
		visited[node.AccountID] = true
		node.Depth = depth
		// Drop back-edges to already-placed nodes so a corrupted parent
		// cycle cannot leave a pointer loop in the forest.
		node.Children = nil
		for _, child := range children[node.AccountID] {
			if !visited[child.AccountID] {
				node.Children = append(node.Children, child)
			}
		}
		sortByCode(node.Children)
		for _, child := range node.Children {
			attach(child, depth+1)
		}
	}

	sortByCode(roots)
	for _, root := range roots {
		attach(root, 0)
	}

	// Anything still unvisited sits on a parent cycle; promote it to a root
	// so it is not silently dropped.
	var stray []*Node
	for _, node := range byID {
		if !visited[node.AccountID] {
			stray = append(stray, node)
		}
	}
	sortByCode(stray)
	for _, node := range stray {
		if !visited[node.AccountID] {
			attach(node, 0)
			roots = append(roots, node)
		}
	}
	sortByCode(roots)

	if roots == nil {
		roots = []*Node{}
	}
	return roots
}

func sortByCode(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Code < nodes[j].Code
	})
}
