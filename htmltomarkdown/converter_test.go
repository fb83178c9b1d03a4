package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements newsbrowse.Converter at compile time.
var _ newsbrowse.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>첫 문단입니다.</p><p>둘째 문단입니다.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "첫 문단입니다.\n\n둘째 문단입니다.", md)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>제목</h1><h2>부제목</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# 제목")
		assert.Contains(t, md, "## 부제목")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>원문은 <a href="https://press.example/1">여기</a>에서 볼 수 있다.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[여기](https://press.example/1)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>금리 동결</li><li>물가 둔화</li></ul>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- 금리 동결")
		assert.Contains(t, md, "- 물가 둔화")
	})

	t.Run("converts emphasis and quotes", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>속보</strong></p><blockquote><p>금리 인하를 서두르지 않겠다.</p></blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**속보**")
		assert.Contains(t, md, "> 금리 인하를 서두르지 않겠다.")
	})

	t.Run("drops images", func(t *testing.T) {
		t.Parallel()

		html := `<p>본문 앞</p><img src="https://imgnews.example/1.jpg" alt="사진"><figure><img src="https://imgnews.example/2.jpg"><figcaption>사진 설명</figcaption></figure><p>본문 뒤</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "본문 앞")
		assert.Contains(t, md, "본문 뒤")
		assert.NotContains(t, md, "imgnews.example")
		assert.NotContains(t, md, "![")
		assert.NotContains(t, md, "사진 설명")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert(" \n")

		require.Error(t, err)
		assert.Equal(t, newsbrowse.EINVALID, newsbrowse.ErrorCode(err))
	})
}
