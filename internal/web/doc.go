// Package web serves the yt-dlp bridge over HTTP for a browser front-end.
//
// JSON endpoints mirror the bridge commands; download output is streamed to
// connected browsers over a websocket as ready-to-insert HTML fragments.
package web
