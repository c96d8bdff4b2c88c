package catalog

// Generated from the print portfolio image folders; adjust manually when the
// portfolio changes.
var products = []Product{
	{
		ID:          "print-npl-portfolio-prints",
		Name:        "Grand Ring",
		Image:       "/images/prints/NPL Portfolio prints.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints.jpg",
		Description: "Whatever you see up there, you'll only get to see it for a moment.",
	},
	{
		ID:          "print-npl-portfolio-prints-1",
		Name:        "Omniprominence",
		Image:       "/images/prints/NPL Portfolio prints-1.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-1.jpg",
		Description: "It's hard to describe how imposing this mountain is as you approach her. With every turn you are met with a view that is dominated by her.",
	},
	{
		ID:          "print-npl-portfolio-prints-2",
		Name:        "Path of Most Enchantment",
		Image:       "/images/prints/NPL Portfolio prints-2.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-2.jpg",
		Description: "As we carved these roads into the wilderness, it often feels that the path was determined by our natural desire to see something beautiful.",
	},
	{
		ID:          "print-npl-portfolio-prints-3",
		Name:        "We Can Rest Now",
		Image:       "/images/prints/NPL Portfolio prints-3.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-3.jpg",
		Description: "We all search for or have found solace in this moment. To find undisturbed peace in another like us.",
	},
	{
		ID:          "print-npl-portfolio-prints-4",
		Name:        "Never Sleeps",
		Image:       "/images/prints/NPL Portfolio prints-4.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-4.jpg",
		Description: "In an age of automation, algorithms built for agitation, and anti-affection it is easy to feel as though there are always forces at play within the dark castles. (Part 2 of 2)",
	},
	{
		ID:          "print-npl-portfolio-prints-5",
		Name:        "Evil Lies",
		Image:       "/images/prints/NPL Portfolio prints-5.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-5.jpg",
		Description: "In an age of automation, algorithms built for agitation, and anti-affection it is easy to feel as though there are always forces at play within the dark castles. (Part 1 of 2)",
	},
	{
		ID:          "print-npl-portfolio-prints-6",
		Name:        "Differential Emotion",
		Image:       "/images/prints/NPL Portfolio prints-6.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-6.jpg",
		Description: "After millenia of erosion, all that is left of this sea stack is the toughest material. Standing alone in an environment destined to wear it down, it stands firm.",
	},
	{
		ID:          "print-npl-portfolio-prints-7",
		Name:        "Overlooked Overlook",
		Image:       "/images/prints/NPL Portfolio prints-7.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-7.jpg",
		Description: "If you were to turn 180 degrees from this you would see Mt. Rainier in all her glory.",
	},
	{
		ID:          "print-npl-portfolio-prints-8",
		Name:        "Fly-by",
		Image:       "/images/prints/NPL Portfolio prints-8.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-8.jpg",
		Description: "Sometimes it really is just a little bit of luck and little bit of looking in the right direction.",
	},
	{
		ID:          "print-npl-portfolio-prints-9",
		Name:        "Forever Dancing",
		Image:       "/images/prints/NPL Portfolio prints-9.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-9.jpg",
		Description: "A figure destined to dance for others to either ogle or ignore her, but never for her satisfaction.",
	},
	{
		ID:          "print-npl-portfolio-prints-10",
		Name:        "If Gold Could Rust",
		Image:       "/images/prints/NPL Portfolio prints-10.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-10.jpg",
		Description: "Pure gold cannot tarnish, however that isn't to say it can't find its way to being a blemish.",
	},
	{
		ID:          "print-npl-portfolio-prints-12",
		Name:        "Can You Blame Me For Going?",
		Image:       "/images/prints/NPL Portfolio prints-12.jpg",
		Thumbnail:   "/images/thumbs/NPL Portfolio prints-12.jpg",
		Description: "The sun always sets and good things always come to an end, but can you blame a man for wanting to chase it just a little further?",
	},
}
