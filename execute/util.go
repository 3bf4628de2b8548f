//Utility functions
//go:build !i18nops_runtime_only

package execute

// Returns the keys of the map m in an indeterminate order
func getMapKeys[M ~map[K]V, K comparable, V any](m M) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	return ret
}

// Conditional
func cond[T any](isTrue bool, ifTrue, ifFalse T) T {
	if isTrue {
		return ifTrue
	}
	return ifFalse
}

// Makes sure a directory path ends in a forward slash
func addSlash(path string) string {
	if len(path) == 0 || (path[len(path)-1] != '/' && path[len(path)-1] != '\\') {
		path = path + "/"
	}
	return path
}
