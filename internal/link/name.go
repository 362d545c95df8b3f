package link

import "strings"

const defaultFlag = "🌐"

// displayName builds "<flag> <base>", removing any copy of the flag already
// present in the base name so that it never appears twice.
func displayName(baseName, region string) string {
	flag := strings.TrimSpace(region)
	if flag == "" {
		flag = defaultFlag
	}
	clean := strings.TrimSpace(strings.ReplaceAll(baseName, flag, ""))
	return flag + " " + clean
}
