package gitexec

import (
	"container/heap"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func fakeCommit(hash string, parents []string, when time.Time, subject, body string) *object.Commit {
	var parentHashes []plumbing.Hash
	for _, p := range parents {
		parentHashes = append(parentHashes, plumbing.NewHash(p))
	}
	message := subject
	if body != "" {
		message = subject + "\n\n" + body
	}
	return &object.Commit{
		Hash:         plumbing.NewHash(hash),
		Author:       object.Signature{Name: "Ada Author", Email: "ada@example.com", When: when},
		Committer:    object.Signature{Name: "Cam Committer", Email: "cam@example.com", When: when},
		Message:      message,
		ParentHashes: parentHashes,
	}
}

func TestBuildLogBufferFieldOrderAndCount(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	commit := fakeCommit(h('a'), []string{h('b')}, now, "subject line", "body text")

	buf := buildLogBuffer([]*object.Commit{commit})
	fields := splitFields(t, buf)

	require.Equal(t, h('a'), fields[0])
	require.Equal(t, h('b'), fields[1])
	require.Equal(t, "Ada Author", fields[2])
	require.Equal(t, "ada@example.com", fields[3])
	require.Equal(t, now.Format(time.RFC3339), fields[4])
	require.Equal(t, "subject line", fields[8])
	require.Equal(t, "body text", fields[9])
}

func TestBuildLogBufferNoParentsIsEmptyField(t *testing.T) {
	now := time.Now()
	commit := fakeCommit(h('a'), nil, now, "root commit", "")
	buf := buildLogBuffer([]*object.Commit{commit})

	fields := splitFields(t, buf)
	require.Equal(t, "", fields[1])
}

func splitFields(t *testing.T, buf []byte) []string {
	t.Helper()
	require.True(t, len(buf) > 0)
	record := buf[:len(buf)-1] // strip trailing \x01
	var fields []string
	start := 0
	for i, b := range record {
		if b == 0x00 {
			fields = append(fields, string(record[start:i]))
			start = i + 1
		}
	}
	fields = append(fields, string(record[start:]))
	return fields
}

func TestCommitHeapOrdersByCommitterDateNewestFirst(t *testing.T) {
	older := fakeCommit(h('a'), nil, time.Unix(100, 0), "old", "")
	newer := fakeCommit(h('b'), nil, time.Unix(200, 0), "new", "")

	ch := &commitHeap{}
	heap.Init(ch)
	heap.Push(ch, older)
	heap.Push(ch, newer)

	first := heap.Pop(ch).(*object.Commit)
	require.Equal(t, newer.Hash, first.Hash)
}
