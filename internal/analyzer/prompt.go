package analyzer

import "fmt"

const promptTemplate = `You are a fashion stylist helping someone put together the perfect outfit. Break the description below into specific clothing categories, each with a shopping search query.

Outfit description: "%s"

Reply with ONLY valid JSON in exactly this shape (no markdown, no code fences):
{
  "summary": "One sentence describing the overall style of the outfit",
  "categories": [
    {
      "name": "Category name such as Top, Bottom, Dress, Shoes or Accessories",
      "icon": "A single emoji for this category",
      "searchQuery": "A specific Google Shopping query for this item",
      "priceRange": "Estimated price range such as $30-$80"
    }
  ]
}

Include 3 to 5 relevant categories. Make every search query specific, using the styles, colors and materials mentioned in the description.`

// BuildPrompt embeds the description verbatim into the analysis instruction
func BuildPrompt(description string) string {
	return fmt.Sprintf(promptTemplate, description)
}
