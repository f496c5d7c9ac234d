package adaccounts

import "strings"

// cnFromDN extracts the CN value from a distinguished name, e.g.
// "CN=John Doe,OU=TI,DC=example,DC=com" yields "John Doe". When no CN
// component exists the input is returned unchanged.
func cnFromDN(dn string) string {
	if dn == "" {
		return ""
	}
	for _, part := range strings.Split(dn, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "CN=") {
			return part[3:]
		}
	}
	return dn
}

// ouComponents returns the OU values of a distinguished name in the order
// they appear (innermost first).
func ouComponents(dn string) []string {
	var ous []string
	for _, part := range strings.Split(dn, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "OU=") {
			ous = append(ous, part[3:])
		}
	}
	return ous
}

// ouSegments derives the department and organizational unit from an account
// DN shaped like CN=...,OU=<department>,OU=<orgunit>,OU=Usuarios,<base>.
// Both are empty when the DN has fewer than three OU components.
func ouSegments(dn string) (department, organizationalUnit string) {
	ous := ouComponents(dn)
	if len(ous) < 3 {
		return "", ""
	}
	return ous[0], ous[1]
}

// friendlyPath renders a DN as a slash-separated container path, dropping
// the DC components and reversing the remainder:
// "CN=John,OU=TI,DC=x,DC=y" -> "TI/John".
func friendlyPath(dn string) string {
	if dn == "" {
		return ""
	}
	var values []string
	for _, part := range strings.Split(dn, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "DC=") {
			continue
		}
		if i := strings.Index(part, "="); i >= 0 {
			part = part[i+1:]
		}
		values = append(values, part)
	}
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return strings.Join(values, "/")
}

// digitsOnly strips every non-digit rune, used to clean formatted tax IDs
// before the description-prefix lookup.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
