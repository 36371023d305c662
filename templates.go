package main

import "html/template"

type pageData struct {
	View    View
	Notices []Notice
	Scroll  *ScrollBy
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .View.Query}}{{.View.Query}} · {{end}}Image search</title>
{{- if .View.Loading}}
<meta http-equiv="refresh" content="1">
{{- end}}
<style>
body { margin: 0; font-family: sans-serif; }
.searchbar { position: sticky; top: 0; padding: 12px 24px; background: #3f51b5; }
.searchbar input { width: 320px; padding: 6px; font-size: 18px; }
.notices { position: fixed; top: 64px; right: 16px; width: 320px; }
.notice { padding: 10px 14px; margin-bottom: 8px; border-radius: 4px; color: #fff; }
.notice-warning { background: #eebf31; }
.notice-failure { background: #ff5549; }
.gallery { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 16px; list-style: none; margin: 0 auto; padding: 16px 24px; }
.gallery-item img { width: 100%; height: {{.CardHeight}}px; object-fit: cover; }
.loader, .load-more { display: block; margin: 16px auto; text-align: center; }
</style>
</head>
<body>
{{template "searchbar" .}}
{{template "notices" .}}
{{template "gallery" .}}
{{if .View.Loading}}{{template "loader" .}}{{end}}
{{if .View.Hits}}{{template "button" .}}{{end}}
{{- with .Scroll}}
<script>
window.addEventListener("load", function () {
  var el = document.getElementById({{.Anchor}});
  if (el) { el.scrollIntoView({block: "end"}); }
  window.scrollBy({top: {{.Pixels}}, behavior: "smooth"});
});
</script>
{{- end}}
</body>
</html>
{{define "searchbar"}}<header class="searchbar">
<form method="post" action="/search">
<input type="text" name="query" value="{{.View.Query}}" autocomplete="off" autofocus placeholder="Search images and photos">
<button type="submit">Search</button>
</form>
</header>{{end}}
{{define "notices"}}{{if .Notices}}<div class="notices">
{{- range .Notices}}
<div class="notice notice-{{.Level}}">{{.Message}}</div>
{{- end}}
</div>{{end}}{{end}}
{{define "gallery"}}<ul class="gallery">
{{- range .View.Hits}}
{{template "item" .}}
{{- end}}
</ul>{{end}}
{{define "item"}}<li class="gallery-item" id="{{.Anchor}}">
<a href="{{.FullURL}}" target="_blank" rel="noopener"><img src="{{.ThumbnailURL}}" alt="{{.Tags}}" loading="lazy"></a>
</li>{{end}}
{{define "loader"}}<div class="loader" role="status">Loading…</div>{{end}}
{{define "button"}}<form class="load-more" method="post" action="/more">
<button type="submit"{{if not .View.CanLoadMore}} disabled{{end}}>Load more</button>
</form>{{end}}
`))

func (pageData) CardHeight() int { return CardHeight }
