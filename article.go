package newsbrowse

// ArticleMeta is one article entry found on a listing page.
type ArticleMeta struct {
	Title  string
	URL    string
	Author string
}

// ArticleRecord is an article discovered for a source on a date.
// Records are not deduplicated; the same URL may appear more than once.
type ArticleRecord struct {
	Domain string `json:"domain"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
}

// ArticleText is the extracted body text of the article at URL.
type ArticleText struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Columns lists the result table columns in output order.
var Columns = []string{"domain", "date", "title", "url", "author", "text"}

// ResultRow is an article record joined with its extracted text.
type ResultRow struct {
	ArticleRecord
	Text string `json:"text"`
}

// Values returns the row's fields in Columns order.
func (r *ResultRow) Values() []string {
	return []string{r.Domain, r.Date, r.Title, r.URL, r.Author, r.Text}
}

// ResultTable is the final output of a run.
type ResultTable struct {
	// Date is the target date of the run.
	Date string
	Rows []ResultRow
}

// Key returns the object name the table is stored under.
func (t *ResultTable) Key() string {
	return t.Date + ".csv"
}
