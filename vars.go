package promptsplit

import (
	"reflect"
	"text/template/parse"
)

// isNilNode returns true if node is nil or an interface holding a nil pointer (e.g. *parse.ListNode).
func isNilNode(node parse.Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func walkParseNodes(node parse.Node, visit func(parse.Node)) {
	if isNilNode(node) {
		return
	}
	visit(node)
	switch n := node.(type) {
	case *parse.ListNode:
		for _, c := range n.Nodes {
			walkParseNodes(c, visit)
		}
	case *parse.ActionNode:
		if n.Pipe != nil {
			walkParseNodes(n.Pipe, visit)
		}
	case *parse.PipeNode:
		for _, c := range n.Cmds {
			walkParseNodes(c, visit)
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			walkParseNodes(a, visit)
		}
	case *parse.IfNode:
		walkParseNodes(n.Pipe, visit)
		walkParseNodes(n.List, visit)
		walkParseNodes(n.ElseList, visit)
	case *parse.RangeNode:
		walkParseNodes(n.Pipe, visit)
		walkParseNodes(n.List, visit)
		walkParseNodes(n.ElseList, visit)
	case *parse.WithNode:
		walkParseNodes(n.Pipe, visit)
		walkParseNodes(n.List, visit)
		walkParseNodes(n.ElseList, visit)
	}
}

// extractVarsFromTree collects variable names referenced as .Vars.name (e.g. .Vars.lang -> "lang").
// Only top-level field chains are inspected; inside range/with the dot changes and references are skipped.
func extractVarsFromTree(tree *parse.Tree) []string {
	if tree == nil || tree.Root == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	var walkDepth func(node parse.Node, scoped bool)
	walkDepth = func(node parse.Node, scoped bool) {
		switch n := node.(type) {
		case *parse.RangeNode:
			walkParseNodes(n.Pipe, visitVars(seen, &out, scoped))
			walkDepth(n.List, true)
			walkDepth(n.ElseList, scoped)
			return
		case *parse.WithNode:
			walkParseNodes(n.Pipe, visitVars(seen, &out, scoped))
			walkDepth(n.List, true)
			walkDepth(n.ElseList, scoped)
			return
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walkDepth(c, scoped)
			}
			return
		case *parse.IfNode:
			walkParseNodes(n.Pipe, visitVars(seen, &out, scoped))
			walkDepth(n.List, scoped)
			walkDepth(n.ElseList, scoped)
			return
		}
		walkParseNodes(node, visitVars(seen, &out, scoped))
	}
	walkDepth(tree.Root, false)
	return out
}

func visitVars(seen map[string]bool, out *[]string, scoped bool) func(parse.Node) {
	return func(n parse.Node) {
		if scoped {
			return
		}
		fn, ok := n.(*parse.FieldNode)
		if !ok || len(fn.Ident) < 2 || fn.Ident[0] != "Vars" {
			return
		}
		name := fn.Ident[1]
		if !seen[name] {
			seen[name] = true
			*out = append(*out, name)
		}
	}
}
