package main

import (
	"bytes"
	"testing"

	"github.com/getpatchwork/pwclient/internal/api"
)

func TestPrintGroupedSortsByPerson(t *testing.T) {
	oldFormat := listFlags.format
	listFlags.format = "%{id}"
	defer func() { listFlags.format = oldFormat }()

	patches := []api.Patch{
		{ID: 3, Submitter: "Zed <zed@example.com>"},
		{ID: 1, Submitter: "Amy <amy@example.com>"},
		{ID: 2, Submitter: "Zed <zed@example.com>"},
	}

	var buf bytes.Buffer
	printGrouped(&buf, patches, "Patches submitted by %s:", func(p api.Patch) string { return p.Submitter })

	want := "Patches submitted by Amy <amy@example.com>:\n" +
		"1\n" +
		"Patches submitted by Zed <zed@example.com>:\n" +
		"3\n" +
		"2\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
