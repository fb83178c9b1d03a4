package goquery_test

import (
	"testing"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordListingParser_MaxPage(t *testing.T) {
	t.Parallel()

	t.Run("reads the last anchor of the paging strip", func(t *testing.T) {
		t.Parallel()

		html := `<div class="sc_page">
<div class="sc_page_inner">
	<a href="?start=1">1</a>
	<a href="?start=11">2</a>
	<a href="?start=21" aria-pressed="true">3</a>
</div>
</div>`

		p := goquery.NewKeywordListingParser()
		got, err := p.MaxPage(html)

		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})

	t.Run("returns ENOTFOUND when the paging strip is absent", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewKeywordListingParser()
		_, err := p.MaxPage(`<div class="api_noresult_wrap">검색결과가 없습니다</div>`)

		require.Error(t, err)
		assert.Equal(t, newsbrowse.ENOTFOUND, newsbrowse.ErrorCode(err))
	})

	t.Run("returns EINVALID for a zero page label", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewKeywordListingParser()
		_, err := p.MaxPage(`<div class="sc_page_inner"><a>0</a></div>`)

		require.Error(t, err)
		assert.Equal(t, newsbrowse.EINVALID, newsbrowse.ErrorCode(err))
	})
}

func TestKeywordListingParser_Articles(t *testing.T) {
	t.Parallel()

	t.Run("reads the title attribute, link and press of each result", func(t *testing.T) {
		t.Parallel()

		html := `<ul class="list_news">
<li><div class="news_wrap"><div class="news_area">
	<div class="news_info"><div class="info_group">
		<a href="https://press.example/a" class="info press">  매일경제  </a>
		<span class="info">1시간 전</span>
		<a href="https://n.news.naver.com/x" class="info">네이버뉴스</a>
	</div></div>
	<a href="https://press.example/a/1" class="news_tit" title="금리 인상 전망">금리 <mark>인상</mark>...</a>
</div></div></li>
<li><div class="news_wrap"><div class="news_area">
	<div class="news_info"><div class="info_group"><a class="info press">한국경제</a></div></div>
	<a href="https://press.example/b/2" class="news_tit">물가 상승</a>
</div></div></li>
</ul>`

		p := goquery.NewKeywordListingParser()
		got, err := p.Articles(html)

		require.NoError(t, err)
		assert.Equal(t, []newsbrowse.ArticleMeta{
			{Title: "금리 인상 전망", URL: "https://press.example/a/1", Author: "매일경제"},
			{Title: "물가 상승", URL: "https://press.example/b/2", Author: "한국경제"},
		}, got)
	})

	t.Run("skips results without an info group anchor", func(t *testing.T) {
		t.Parallel()

		html := `
<div class="news_area"><a class="news_tit" href="https://example.com/1" title="one"></a></div>
<div class="news_area"><div class="info_group"><a>press</a></div><a class="news_tit" href="https://example.com/2" title="two"></a></div>`

		p := goquery.NewKeywordListingParser()
		got, err := p.Articles(html)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://example.com/2", got[0].URL)
	})
}
