// Package fsutil 提供实验脚本常用的文件系统小工具。
package fsutil

import (
	"os"
	"path/filepath"
)

// FindProjectRoot 从当前工作目录向上查找包含 marker（如 ".git"）的目录。
// 找不到时返回 ("", false)。
func FindProjectRoot(marker string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return FindRootFrom(dir, marker)
}

// FindRootFrom 从 dir 开始向上查找包含 marker 的目录，直到文件系统根。
func FindRootFrom(dir, marker string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
