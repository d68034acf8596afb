package i18n

// Translator retrieves localized messages for issue codes. data provides
// optional metadata to embed in the message (for example, "expected" or
// "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if data["expected"] != "" {
				return data["expected"] + " を期待しましたが、" + data["actual"] + " が与えられました"
			}
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unexpected_key":
			return "予期しないキーです"
		case "refinement":
			return "条件を満たしていません"
		case "transform":
			if data["cause"] != "" {
				return "変換に失敗しました: " + data["cause"]
			}
			return "変換に失敗しました"
		case "invalid_union":
			return "どのメンバーにも一致しません"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if data["expected"] != "" {
				return "Expected " + data["expected"] + ", actual " + data["actual"]
			}
			return "invalid type"
		case "required":
			return "required property missing"
		case "unexpected_key":
			return "unexpected key"
		case "refinement":
			return "predicate not satisfied"
		case "transform":
			if data["cause"] != "" {
				return "transformation failed: " + data["cause"]
			}
			return "transformation failed"
		case "invalid_union":
			return "no union member matched"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
