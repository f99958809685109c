package importer

import (
	"fmt"
	"strings"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
)

// Locale describes the target market for the generated catalog copy.
type Locale struct {
	Language      string
	Currency      string
	CurrencyHints string
}

// CategorizeSystemInstruction pins the one-shot categorize assistant to a
// bare Arabic category name, nothing else.
const CategorizeSystemInstruction = "أنت خبير تصنيف منتجات لمتاجر التجارة الإلكترونية. دائمًا رد فقط باسم القسم أو التصنيف الأنسب (مثلاً: إلكترونيات، ملابس، عطور، ساعات، المنزل، ديكور، إلخ). لا تضف أي شرح إضافي أو جمل أخرى فقط اكتب اسم القسم ككلمة أو كلمتين باللغة العربية."

// buildExtractionPrompt composes the single instruction block sent to the
// model: market/translation directives, strict image-selection rules, the
// candidate-URL restriction, and the exact output schema, followed by the
// mined evidence. The plain text gets a second, stricter truncation here;
// the wider mining budget exists so structured-data and early-text signal is
// not lost before this point.
func buildExtractionPrompt(loc Locale, mined *domain.MinedContent, maxTextChars int) string {
	urls := make([]string, 0, len(mined.ImageCandidates))
	for _, c := range mined.ImageCandidates {
		urls = append(urls, c.URL)
	}

	return fmt.Sprintf(`You are an expert e-commerce product data extractor.
Analyze the following text content, structured JSON-LD (if any), list of candidate image URLs, and the attached image payloads scraped from an e-commerce product page (like AliExpress, Alibaba, or Temu).

Extract the following information and translate the text to well-written, professional %[1]s suitable for a high-end e-commerce store:
1. "title": A concise, attractive product title in %[1]s.
2. "description": A detailed, persuasive product description in %[1]s with bullet points for features.
3. "price": Extract the numeric price and convert it to %[2]s. %[3]s Just return the number without currency symbols.
4. "category": Categorize the product into one short %[1]s category name.
5. "images": Select the top 1 to 4 image URLs that are clear photographs of the described physical product. The attached images are the downloaded contents of the first candidate URLs; judge them by their pixels. Reject logos, shipping or delivery graphics, flags, badges, payment icons, and text screenshots. If an image shows only a brand mark or a UI fragment, reject it. Use ONLY URLs from the CANDIDATE IMAGES list below; never invent a URL.

Return EXACTLY a JSON object with NO markdown formatting, NO backticks:
{
    "title": "...",
    "description": "...",
    "price": 199.99,
    "category": "...",
    "images": ["url1", "url2"]
}

---
STRUCTURED DATA:
%[4]s

---
TEXT CONTENT:
%[5]s

---
CANDIDATE IMAGES:
%[6]s
`,
		loc.Language,
		loc.Currency,
		loc.CurrencyHints,
		mined.StructuredMetadata,
		truncateChars(mined.Text, maxTextChars),
		strings.Join(urls, "\n"),
	)
}

// buildCategorizePrompt is the one-shot classification prompt; missing
// fields are spelled out rather than left blank.
func buildCategorizePrompt(title, description string) string {
	if title == "" {
		title = "غير متوفر"
	}
	if description == "" {
		description = "غير متوفر"
	}
	return fmt.Sprintf("صنف المنتج التالي بأفضل قسم ممكن:\nالعنوان: %s\nالوصف: %s", title, description)
}
