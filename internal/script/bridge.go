package script

import (
	lua "github.com/yuin/gopher-lua"
)

// tableToStrings converts a Lua array of strings into a Go slice. Non-string
// entries are rendered with their Lua string form.
func tableToStrings(t *lua.LTable) []string {
	n := t.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, t.RawGetInt(i).String())
	}
	return out
}

// tableToData converts a Lua table into a node data map. Nested tables are
// converted recursively; array-shaped tables become slices. Cycles are broken
// by dropping the repeated table.
func tableToData(t *lua.LTable) map[string]any {
	v := tableToGo(t, make(map[*lua.LTable]bool))
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	// A table whose keys are exactly 1..n converts to a slice.
	isArray := true
	count := 0
	maxN := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok || float64(kn) != float64(int(kn)) || int(kn) < 1 {
			isArray = false
			return
		}
		if int(kn) > maxN {
			maxN = int(kn)
		}
	})

	if isArray && count > 0 && count == maxN {
		arr := make([]any, maxN)
		for i := 1; i <= maxN; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoValue(v, visited)
	})
	return m
}
