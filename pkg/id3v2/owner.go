package id3v2

import "fmt"

// OwnershipFrame is an OWNE frame: a record of the transaction that bought
// the file.
type OwnershipFrame struct {
	Encoding Encoding
	// Price is a currency code followed by the amount, such as "USD19.99".
	Price string
	// PurchaseDate is an 8-character yyyyMMdd date.
	PurchaseDate string
	Seller       string
}

func parseOwnershipFrame(s *stream) (*OwnershipFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	price := readTerminated(EncodingLatin1, s)
	date, err := readExact(EncodingLatin1, s, 8)
	if err != nil {
		return nil, fmt.Errorf("purchase date: %w", err)
	}
	return &OwnershipFrame{
		Encoding:     enc,
		Price:        price,
		PurchaseDate: date,
		Seller:       readString(enc, s),
	}, nil
}

func (f *OwnershipFrame) ID() FrameID { return mustFrameID("OWNE") }

func (f *OwnershipFrame) Key() string { return "OWNE" }

func (f *OwnershipFrame) Empty() bool { return false }

func (f *OwnershipFrame) String() string {
	if f.Seller == "" {
		return fmt.Sprintf("%s, %s", f.Price, f.PurchaseDate)
	}
	return fmt.Sprintf("%s [%s, %s]", f.Seller, f.Price, f.PurchaseDate)
}

func (f *OwnershipFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, renderTerminated(EncodingLatin1, f.Price)...)

	date := encodeString(EncodingLatin1, f.PurchaseDate)
	if len(date) == 8 {
		out = append(out, date...)
	} else {
		// The field must hold exactly 8 characters; an invalid date degrades
		// to the epoch rather than shifting every field after it.
		out = append(out, "19700101"...)
	}

	return append(out, encodeString(enc, f.Seller)...)
}

// TermsOfUseFrame is a USER frame: the terms under which the file was
// provided.
type TermsOfUseFrame struct {
	Encoding Encoding
	Lang     Language
	Text     string
}

func parseTermsOfUseFrame(s *stream) (*TermsOfUseFrame, error) {
	enc, err := parseEncoding(s)
	if err != nil {
		return nil, err
	}
	lang, err := parseLanguage(s)
	if err != nil {
		return nil, err
	}
	return &TermsOfUseFrame{Encoding: enc, Lang: lang, Text: readString(enc, s)}, nil
}

func (f *TermsOfUseFrame) ID() FrameID { return mustFrameID("USER") }

func (f *TermsOfUseFrame) Key() string { return "USER" }

func (f *TermsOfUseFrame) Empty() bool { return f.Text == "" }

func (f *TermsOfUseFrame) String() string { return f.Text }

func (f *TermsOfUseFrame) renderBody(v Version) []byte {
	enc := f.Encoding.forVersion(v)
	out := []byte{enc.renderByte()}
	out = append(out, f.Lang[:]...)
	return append(out, encodeString(enc, f.Text)...)
}
