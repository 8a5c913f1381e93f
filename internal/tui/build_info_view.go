// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Приложение", "VaultX"},
		{"Версия", info.BuildVersion()},
		{"Дата сборки", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, buildInfoLabelStyle.Render(row[0]+":")+" "+row[1])
	}
	return renderPage("О ПРОГРАММЕ", strings.Join(lines, "\n"), "esc: назад")
}
