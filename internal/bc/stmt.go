package bc

import (
	"strings"

	"github.com/danswartzendruber/avl"
)

//
// Wrapper routines around the AVL package for the user function
// table.  The tree is keyed by function name, so listing the
// defined functions gives them in sorted order
//

func (rt *Runtime) functionLookup(name string) *functionDef {

	p := avl.AvlTreeLookup(rt.functions, name, cmpStringKey)
	if p != nil {
		return p.(*functionDef)
	} else {
		return nil
	}
}

//
// Define or redefine a function.  A redefinition replaces the old
// node, so calls made from now on see the new body
//

func (rt *Runtime) functionDefine(fn *functionDef) {

	if old := rt.functionLookup(fn.name); old != nil {
		avl.AvlTreeRemove(&rt.functions, &old.avl)
	}

	p := avl.AvlTreeInsert(&rt.functions, &fn.avl, fn, cmpStringFnode)
	if p != nil {
		panic("function " + fn.name + " already in tree???")
	}
}

func (rt *Runtime) functionNames() []string {

	var names []string

	p := avl.AvlTreeFirstInOrder(rt.functions)
	for p != nil {
		fn := p.(*functionDef)
		names = append(names, fn.name)
		p = avl.AvlTreeNextInOrder(&fn.avl)
	}

	return names
}

func cmpStringKey(key any, node any) int {

	return strings.Compare(key.(string), node.(*functionDef).name)
}

func cmpStringFnode(node1, node2 any) int {

	return strings.Compare(node1.(*functionDef).name, node2.(*functionDef).name)
}
