package model

// TagColor - токен цвета из палитры и его отображаемое имя
type TagColor struct {
	Key  string
	Name string
}

// TagColors - допустимые цвета тегов
var TagColors = []TagColor{
	{"TagBlue", "Mavi"},
	{"TagGreen", "Yeşil"},
	{"TagPurple", "Mor"},
	{"TagOrange", "Turuncu"},
	{"TagRed", "Kırmızı"},
	{"TagTeal", "Turkuaz"},
	{"TagMint", "Mint"},
	{"TagIndigo", "Indigo"},
	{"TagPink", "Pembe"},
	{"TagYellow", "Sarı"},
	{"TagCyan", "Camgöbeği"},
	{"TagBrown", "Kahverengi"},
	{"TagGray", "Gri"},
	{"TagBlack", "Siyah"},
}

// TagIcons - допустимые иконки тегов
var TagIcons = []string{
	"tag.fill", "bookmark.fill", "star.fill", "heart.fill", "flag.fill",
	"briefcase.fill", "calendar", "checkmark.circle.fill", "chart.bar.fill", "doc.text.fill", "folder.fill",
	"person.fill", "person.2.fill", "bubble.left.and.bubble.right.fill", "phone.fill",
	"lightbulb.fill", "book.fill", "graduationcap.fill", "pencil.tip",
	"bolt.fill", "gearshape.fill", "desktopcomputer", "terminal.fill",
	"heart.text.square.fill", "leaf.fill", "bed.double.fill", "figure.walk",
	"music.note", "gamecontroller.fill", "camera.fill", "film.fill",
	// иконки тегов по умолчанию
	"exclamationmark.triangle.fill", "ant.fill", "magnifyingglass.circle.fill",
}

// IsKnownColor проверяет, что цвет есть в палитре
func IsKnownColor(key string) bool {
	for _, c := range TagColors {
		if c.Key == key {
			return true
		}
	}
	return false
}

// IsKnownIcon проверяет, что иконка есть в палитре
func IsKnownIcon(icon string) bool {
	for _, i := range TagIcons {
		if i == icon {
			return true
		}
	}
	return false
}
