package main

import (
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tweetdeleter/internal/reader"
)

func TestParseDeleteFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *deleteOptions
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"-tweetjs-path", "tweet.js"},
			want: &deleteOptions{
				tweetJSPath: "tweet.js",
				filters:     map[reader.Kind]bool{},
				backend:     "api",
			},
		},
		{
			name: "all api flags",
			args: []string{
				"-tweetjs-path", "tweet.js",
				"-since", "2019-01-01",
				"-until", "2020-06-30T12:30:00",
				"-filter", "reply", "-filter", "retweet",
				"-spare-ids", "keep.txt",
				"-spare-min-likes", "10",
				"-spare-min-retweets", "3",
				"-dry-run",
			},
			want: &deleteOptions{
				tweetJSPath:  "tweet.js",
				since:        time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
				until:        time.Date(2020, time.June, 30, 12, 30, 0, 0, time.UTC),
				filters:      map[reader.Kind]bool{reader.Reply: true, reader.Retweet: true},
				spareIDsPath: "keep.txt",
				minLikes:     10,
				minRetweets:  3,
				dryRun:       true,
				backend:      "api",
			},
		},
		{
			name: "browser backend",
			args: []string{"-tweetjs-path", "tweet.js", "-backend", "browser", "-username", "me", "-password", "pw"},
			want: &deleteOptions{
				tweetJSPath: "tweet.js",
				filters:     map[reader.Kind]bool{},
				backend:     "browser",
				username:    "me",
				password:    "pw",
			},
		},
		{name: "missing archive", args: []string{"-dry-run"}, wantErr: true},
		{name: "bad filter", args: []string{"-tweetjs-path", "t.js", "-filter", "replies"}, wantErr: true},
		{name: "bad date", args: []string{"-tweetjs-path", "t.js", "-since", "yesterday-ish"}, wantErr: true},
		{name: "negative threshold", args: []string{"-tweetjs-path", "t.js", "-spare-min-likes", "-1"}, wantErr: true},
		{name: "unknown backend", args: []string{"-tweetjs-path", "t.js", "-backend", "carrier-pigeon"}, wantErr: true},
		{name: "browser without password", args: []string{"-tweetjs-path", "t.js", "-backend", "browser", "-username", "me"}, wantErr: true},
		{name: "stray argument", args: []string{"-tweetjs-path", "t.js", "extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDeleteFlags(tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(deleteOptions{})); diff != "" {
				t.Errorf("parseDeleteFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("debug: %v", err)
	}
	if _, err := newLogger("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
