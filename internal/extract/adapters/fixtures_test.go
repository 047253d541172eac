package adapters

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parse(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

const cambridgePage = `<html><body>
<h1>Computer Science, BA (Hons)</h1>
<div id="entry-requirements">
<p>A level: A*A*A</p>
<p>IB: 38 points, with 776 at Higher Level</p>
<p>For this course you will need: Mathematics and a science</p>
<p>We also recommend Further Mathematics.</p>
</div>
</body></html>`

// Only the second and third selectors match; the third-selector element comes first.
const cambridgeSecondSelectorPage = `<html><body>
<h1>Economics, BA (Hons)</h1>
<div class="course-entry-requirements-note">A level: BBB</div>
<div class="field field-entry-overview">
<p>A level: A*AA</p>
<p>For this course you will need: Mathematics</p>
</div>
</body></html>`

const cambridgeSentinelPage = `<html><body>
<h1>History, BA (Hons)</h1>
<div id="entry-requirements">
<p>A level: A*AA</p>
<p>IB: 40</p>
<p>We don't ask for any specific subjects, but History is useful.</p>
</div>
</body></html>`

const cambridgeNoGradePage = `<html><body>
<h1>Music, BA (Hons)</h1>
<div id="entry-requirements">
<p>Offers vary by College.</p>
<p>Specific subjects required: Music and a performance qualification.</p>
</div>
</body></html>`

// Line breaks and adjacent paragraphs flatten with no separator between the
// grade run and the next label.
const cambridgeLineBreakPage = `<html><body>
<h1>Architecture BA and MArch, BA (Hons)</h1>
<div id="entry-requirements"><p>A level: A*AA<br>IB: 40</p></div>
</body></html>`

const cambridgeAdjacentParagraphPage = `<html><body>
<h1>Engineering, BA (Hons)</h1>
<div id="entry-requirements"><p>A level: A*A*A</p><p>IB: 40-42</p></div>
</body></html>`

const cambridgeIBOnlyPage = `<html><body>
<h1>Linguistics, BA (Hons)</h1>
<div id="entry-requirements">
<p>IB: 38 points</p>
<p>For this course you will need: English Language</p>
<p>We also recommend a modern language.</p>
</div>
</body></html>`

const oxfordTablePage = `<html><body>
<h1>Mathematics</h1>
<p>Course duration: 3 years (BA); 4 years (MMath)</p>
<table>
<tr><td>A-levels:</td><td>A*A*A with A*s in Mathematics and Further Mathematics</td></tr>
<tr><td>Advanced Highers:</td><td>AA/AAB</td></tr>
<tr><td>International Baccalaureate (IB):</td><td>39 (including core points) with 766 at HL</td></tr>
<tr><td>Any other equivalent qualification</td><td>Contact us</td></tr>
</table>
</body></html>`

const oxfordParagraphPage = `<html><body>
<h1>History</h1>
<table><tr><td>Fees</td><td>See the fees page</td></tr></table>
<p class="audience-copy">Entrance requirements: see below.</p>
<p class="audience-copy">Entrance requirements: AAA. Applicants are expected to have History to A-level or equivalent.</p>
</body></html>`

const oxfordTiePage = `<html><body>
<h1>Earth Sciences (Geology)</h1>
<p>Course duration: 4 years (BA); 4 years (MEarthSci)</p>
</body></html>`

const lsePage = `<html><body>
<div id="main"><div><div><div></div><div><div><h1><span>BSc Economics</span></h1></div></div></div></div></div>
<div id="entry-requirement__home">
<p>Typical offer</p>
<p>A*AA with an A* in Mathematics</p>
<p>38 points overall with 7,6,6 at Higher Level including 7 in Mathematics</p>
</div>
</body></html>`

const lseFallbackTitlePage = `<html><body>
<h1><span>LLB Laws</span></h1>
<div id="entry-requirement__home">
<p>AAA</p>
</div>
</body></html>`

const lseGluedPage = `<html><body>
<h1><span>BSc Mathematics and Economics</span></h1>
<div id="entry-requirement__home"><p>A*AAincluding Mathematics</p><p>38 points overall</p></div>
</body></html>`

const uclPage = `<html><body>
<h1>Economics BSc</h1>
<div id="tab1-alevel"><div><dl>
<dt>Grades</dt><dd>A*AA</dd>
<dt>Subjects</dt><dd>Mathematics required.</dd>
</dl></div></div>
<div id="tab2-ibdiploma"><div><dl>
<dt>Points</dt><dd>39</dd>
<dt>Subjects</dt><dd>A total of 19 points in three higher level subjects including 7 in Mathematics.</dd>
</dl></div></div>
</body></html>`

const emptyPage = `<html><body><p>Page not found</p></body></html>`
