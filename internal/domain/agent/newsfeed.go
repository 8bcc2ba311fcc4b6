package agent

// Newsfeed is the pool of ambient flavor notifications shown between
// scripted events. Purely cosmetic; the banner queue displays them verbatim.
var Newsfeed = []string{
	"📋 Secretary scheduled tomorrow's meetings",
	"🔍 Inspector finished the code review, zero issues found!",
	"☕ Writer went for a third cup of coffee",
	"📊 Analyst spotted an investment opportunity",
	"🎨 Designer delivered the new UI mockups",
	"💻 Coder fixed a critical bug",
	"📝 Writer published a new blog post",
	"🔬 Researcher wrapped up the market survey",
	"📞 Secretary answered 15 phone calls",
	"🏆 Travis praised the team's hard work",
	"📈 Analyst updated the financial forecast model",
	"🎯 Inspector signed off on the quality check",
	"💡 Designer pitched a bold new concept",
	"⚙️ Coder squeezed 20% more performance out of the system",
	"📚 Researcher reorganized the knowledge base",
	"✉️ Secretary cleared today's entire inbox",
	"🎭 Writer finished the user stories",
	"🔐 Inspector ran the security audit",
	"📱 Designer finished the mobile UI adaptation",
	"🚀 Coder deployed a new build to staging",
	"📉 Analyst reviewed this quarter's spending",
	"🌟 Travis called an all-hands pep talk",
	"🎨 Designer updated the design system guidelines",
	"🔧 Coder refactored the core module",
	"📖 Writer drafted the product manual",
	"💼 Secretary prepared the board presentation",
	"🔎 Researcher dug up the competitor analysis",
	"✅ Inspector confirmed all test cases pass",
	"🎪 The whole team joined a team-building session",
	"☕ The kitchen is out of coffee beans",
}

// RandomNewsflash picks one newsfeed entry using the supplied index picker.
func RandomNewsflash(intn func(int) int) string {
	return Newsfeed[intn(len(Newsfeed))]
}
