package domain

// SeedProducts returns the catalog used when no catalog has been stored yet.
func SeedProducts() []Product {
	return []Product{
		{
			ID:               "1",
			Slug:             "helojet-c200",
			ASIN:             "HELOJET200",
			Title:            "HeloJet C200 Wireless Smart Printer - All-in-One Home Office Solution",
			ShortDescription: "The HeloJet C200 is a compact wireless smart printer built for modern homes and small offices. Enjoy fast, reliable color printing, copying, and scanning from any device with simple Wi-Fi setup and quiet, energy-efficient performance.",
			Description: []string{
				"Wireless All-in-One Printer: Print, copy, and scan from one compact color inkjet designed for home offices, students, and families.",
				"Easy Wi-Fi Setup: Connect to your home network in minutes and print wirelessly from laptops, phones, and tablets (iOS, Android, Windows, and macOS).",
				"Smart Mobile Printing: Send documents and photos to your HeloJet C200 from anywhere in your home using the companion app—no USB cable required.",
				"Crisp Color & Black Text: 0.92-inch wide print head delivers sharp black documents and vibrant color prints for schoolwork, photos, and everyday pages.",
				"Eco-Smart & Quiet: Auto-sleep mode reduces power usage when idle, and Quiet Mode keeps noise low so you can work, study, or sleep without distraction.",
				"Compact Minimalist Design: Clean white chassis with matte grey top and vertical paper feed fits neatly on a desk, shelf, or credenza.",
				"Low-Cost Ink Cartridges: Uses replaceable color and black ink cartridges engineered for consistent quality and predictable running costs.",
			},
			Price:       79.99,
			ListPrice:   129.99,
			Rating:      4.8,
			ReviewCount: 124,
			AmazonURL:   "https://www.amazon.com/s?k=white+minimalist+printer",
			IsFeatured:  true,
			Images: []ProductImage{
				{Src: "https://m.media-amazon.com/images/I/61gKkYQn6lL._AC_SL1500_.jpg", Alt: "HeloJet C200 Front View White"},
				{Src: "https://images.unsplash.com/photo-1589820296156-2454bb8a6d54?auto=format&fit=crop&w=1500&q=80", Alt: "HeloJet C200 Document Printing"},
				{Src: "https://images.unsplash.com/photo-1612815154858-60aa4c59eaa6?auto=format&fit=crop&w=1500&q=80", Alt: "HeloJet C200 Home Office Setup"},
				{Src: "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&w=1500&q=80", Alt: "HeloJet Product Detail"},
				{Src: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&w=1500&q=80", Alt: "HeloJet Modern Desk"},
			},
			Overview: "The HeloJet C200 redefines home printing with a focus on simplicity and connectivity. Designed for the modern wireless household, this all-in-one inkjet eliminates the clutter of cables while providing robust performance for documents, homework, and creative projects. Its minimalist white and grey aesthetic seamlessly blends into any room decor, from home offices to living room shelves.",
			Features: []string{
				"Wireless Freedom: Utilizing advanced Wi-Fi technology, the C200 allows you to print from any room. Whether you are on a laptop in the study or a smartphone in the kitchen, your documents are just a tap away.",
				"Compact Footprint: Space is a premium in many homes. The C200 features a vertical paper feed and retractable trays, minimizing its desk footprint when not in use.",
				"High-Quality Imaging: Equipped with a precision 0.92-inch print head, the printer produces sharp, legible text and vivid colors, ensuring your presentations and photos look professional.",
			},
			TargetAudience: []string{
				"Remote Workers: Reliable scanning and printing for contracts and reports.",
				"Students: Fast, color-rich output for essays and school projects.",
				"Families: Easy mobile printing for everyone in the house without managing cables.",
				"Minimalists: A device that looks good and works well without taking up unnecessary space.",
			},
			SetupText: "Setting up the HeloJet C200 is straightforward using the downloadable companion app, which guides you through connecting to your Wi-Fi network. Please Note: HeloJet.me is the official online store and support site for HeloJet™ printers and accessories. We provide full setup assistance and support for our hardware. For warranty claims or technical troubleshooting, you may contact our support team or refer to the documentation included in the box.",
		},
	}
}

// FallbackImages replace gallery images that fail to load. Image i falls
// back to FallbackImages[i % len(FallbackImages)] so a broken gallery does
// not show the same picture five times.
var FallbackImages = []string{
	"https://images.unsplash.com/photo-1612815154858-60aa4c59eaa6?auto=format&fit=crop&w=1000&q=80",
	"https://images.unsplash.com/photo-1519389950473-47ba0277781c?auto=format&fit=crop&w=1000&q=80",
	"https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&w=1000&q=80",
	"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&w=1000&q=80",
	"https://images.unsplash.com/photo-1556742049-0cfed4f7a07d?auto=format&fit=crop&w=1000&q=80",
}

// FallbackImage returns the fallback for the gallery position index.
func FallbackImage(index int) string {
	if index < 0 {
		index = -index
	}
	return FallbackImages[index%len(FallbackImages)]
}
