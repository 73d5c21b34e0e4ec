package syllabus

// classSyllabus is the NCERT-aligned chapter catalogue served to the
// frontend. Chapters appear in unlock order; empty chapter lists are
// subjects whose PDFs have not been digitised yet.
var classSyllabus = map[string][]Subject{
	"Class 6": {
		{
			ID: 1, Name: "Mathematics", Icon: "📐", Color: "#667eea",
			Chapters: []Chapter{
				{ID: 1, Name: "Number Play", PDFURL: "/pdfs/class6/math/number-play.pdf", Description: "Introduction to numbers and basic operations"},
				{ID: 2, Name: "Fractions", PDFURL: "/pdfs/class6/math/fractions.pdf", Description: "Understanding fractions and their operations"},
				{ID: 3, Name: "Lines and Angles", PDFURL: "/pdfs/class6/math/lines-and-angles.pdf", Description: "Basic geometry concepts"},
				{ID: 4, Name: "Patterns in Mathematics", PDFURL: "/pdfs/class6/math/patterns-in-mathematics.pdf", Description: "Discovering mathematical patterns"},
				{ID: 5, Name: "Perimeter and Area", PDFURL: "/pdfs/class6/math/perimeter-and-area.pdf", Description: "Calculating perimeter and area of shapes"},
				{ID: 6, Name: "Data Handling", PDFURL: "/pdfs/class6/math/data-handling.pdf", Description: "Introduction to data representation"},
				{ID: 7, Name: "Playing with Constructions", PDFURL: "/pdfs/class6/math/playing with constructions.pdf", Description: "Geometric constructions and drawings"},
				{ID: 8, Name: "Symmetry", PDFURL: "/pdfs/class6/math/symmetry.pdf", Description: "Understanding symmetry in shapes"},
			},
		},
		{
			ID: 2, Name: "Science", Icon: "🔬", Color: "#4facfe",
			Chapters: []Chapter{
				{ID: 1, Name: "Components in Food", PDFURL: "/pdfs/class6/science/components-in-food.pdf", Description: "Understanding nutrients and food components"},
				{ID: 2, Name: "Sorting Materials into Groups", PDFURL: "/pdfs/class6/science/sorting-materials-into-groups.pdf", Description: "Classification of materials"},
				{ID: 3, Name: "Separation of Substances", PDFURL: "/pdfs/class6/science/separations-of-substances.pdf", Description: "Methods of separating mixtures"},
				{ID: 4, Name: "Getting to Know Plants", PDFURL: "/pdfs/class6/science/getting-to-know-plants.pdf", Description: "Plant structure and functions"},
				{ID: 5, Name: "Body Movements", PDFURL: "/pdfs/class6/science/body-movements.pdf", Description: "Understanding human and animal movements"},
				{ID: 6, Name: "Living Organisms", PDFURL: "/pdfs/class6/science/livingorganisms.pdf", Description: "Characteristics of living organisms"},
			},
		},
		{
			ID: 3, Name: "English", Icon: "📚", Color: "#fa709a",
			Chapters: []Chapter{
				{ID: 1, Name: "Friendship", PDFURL: "/pdfs/class6/english/friendship.pdf", Description: "Stories and poems about friendship"},
				{ID: 2, Name: "Sports and Wellness", PDFURL: "/pdfs/class6/english/sports-and-wellness.pdf", Description: "Reading about sports and health"},
			},
		},
		{ID: 4, Name: "Social Studies", Icon: "🌍", Color: "#43e97b", Chapters: []Chapter{}},
	},
	"Class 7": {
		{
			ID: 1, Name: "Mathematics", Icon: "📐", Color: "#667eea",
			Chapters: []Chapter{
				{ID: 1, Name: "Integers", PDFURL: "/pdfs/class7/math/integers.pdf", Description: "Learn about positive and negative numbers"},
				{ID: 2, Name: "Fractions and Decimals", PDFURL: "/pdfs/class7/math/fractions-and-decimal.pdf", Description: "Understanding fractions and decimal numbers"},
				{ID: 3, Name: "Data Handling", PDFURL: "/pdfs/class7/math/data-handling.pdf", Description: "Organizing and interpreting data"},
				{ID: 4, Name: "Algebraic Equations", PDFURL: "/pdfs/class7/math/algebraic-equations.pdf", Description: "Introduction to algebraic expressions"},
				{ID: 5, Name: "Lines and Angles", PDFURL: "/pdfs/class7/math/lines-and-angles.pdf", Description: "Advanced geometry concepts"},
				{ID: 6, Name: "Comparing Quantities", PDFURL: "/pdfs/class7/math/comparing-quantities.pdf", Description: "Ratios, percentages, and comparisons"},
			},
		},
		{
			ID: 2, Name: "Science", Icon: "🔬", Color: "#4facfe",
			Chapters: []Chapter{
				{ID: 1, Name: "Nutrition in Plants", PDFURL: "/pdfs/class7/science/nutritions-in-plants.pdf", Description: "How plants make their food"},
				{ID: 2, Name: "Nutrition in Animals", PDFURL: "/pdfs/class7/science/nutrition-in-animals.pdf", Description: "Digestive system and nutrition"},
				{ID: 3, Name: "Respiration in Organisms", PDFURL: "/pdfs/class7/science/respiration-in-organisms.pdf", Description: "Breathing and cellular respiration"},
				{ID: 4, Name: "Transportation in Animals and Plants", PDFURL: "/pdfs/class7/science/transpiration-in-animals-and-in-plants.pdf", Description: "Circulatory and transport systems"},
				{ID: 5, Name: "Physical and Chemical Changes", PDFURL: "/pdfs/class7/science/physical-and-chemical-changes.pdf", Description: "Understanding different types of changes"},
				{ID: 6, Name: "Wastewater Story", PDFURL: "/pdfs/class7/science/wastewater.pdf", Description: "Water treatment and conservation"},
			},
		},
		{ID: 3, Name: "English", Icon: "📚", Color: "#fa709a", Chapters: []Chapter{}},
		{ID: 4, Name: "Social Studies", Icon: "🌍", Color: "#43e97b", Chapters: []Chapter{}},
		{ID: 5, Name: "Hindi", Icon: "🇮🇳", Color: "#f093fb", Chapters: []Chapter{}},
		{ID: 6, Name: "Biology", Icon: "🧬", Color: "#764ba2", Chapters: []Chapter{}},
		{ID: 7, Name: "Telugu", Icon: "📖", Color: "#fa8231", Chapters: []Chapter{}},
	},
	"Class 8": {
		{
			ID: 1, Name: "Mathematics", Icon: "📐", Color: "#667eea",
			Chapters: []Chapter{
				{ID: 1, Name: "Rational Numbers", PDFURL: "/pdfs/class8/math/rational-numbers.pdf", Description: "Understanding rational numbers and operations"},
				{ID: 2, Name: "Linear Equations", PDFURL: "/pdfs/class8/math/linear-equation.pdf", Description: "Solving linear equations in one variable"},
			},
		},
		{
			ID: 2, Name: "Science", Icon: "🔬", Color: "#4facfe",
			Chapters: []Chapter{
				{ID: 1, Name: "Crop Production and Management", PDFURL: "/pdfs/class8/science/crop-production.pdf", Description: "Agricultural practices and crop management"},
				{ID: 2, Name: "Microorganisms", PDFURL: "/pdfs/class8/science/micro-organisms.pdf", Description: "Friend and foe - understanding microorganisms"},
			},
		},
		{ID: 3, Name: "English", Icon: "📚", Color: "#fa709a", Chapters: []Chapter{}},
		{ID: 4, Name: "Social Studies", Icon: "🌍", Color: "#43e97b", Chapters: []Chapter{}},
	},
	"Class 9": {
		{
			ID: 1, Name: "Mathematics", Icon: "📐", Color: "#667eea",
			Chapters: []Chapter{
				{ID: 1, Name: "Quadrilaterals", PDFURL: "/pdfs/class9/math/quadrilaterals.pdf", Description: "Properties of quadrilaterals"},
				{ID: 2, Name: "Mathematical Modeling", PDFURL: "/pdfs/class9/math/Mathematical-modeling.pdf", Description: "Real-world applications of mathematics"},
			},
		},
		{ID: 2, Name: "Physics", Icon: "⚛️", Color: "#764ba2", Chapters: []Chapter{}},
		{ID: 3, Name: "Chemistry", Icon: "🧪", Color: "#f093fb", Chapters: []Chapter{}},
		{ID: 4, Name: "Biology", Icon: "🧬", Color: "#4facfe", Chapters: []Chapter{}},
		{
			ID: 5, Name: "Science", Icon: "🔬", Color: "#4facfe",
			Chapters: []Chapter{
				{ID: 1, Name: "Is Matter Around Us Pure?", PDFURL: "/pdfs/class9/science/is-matter-around-pure.pdf", Description: "Mixtures and pure substances"},
				{ID: 2, Name: "Atoms and Molecules", PDFURL: "/pdfs/class9/science/atoms-and-molecules.pdf", Description: "Basic building blocks of matter"},
			},
		},
		{ID: 6, Name: "English", Icon: "📚", Color: "#fa709a", Chapters: []Chapter{}},
		{ID: 7, Name: "Social Studies", Icon: "🌍", Color: "#43e97b", Chapters: []Chapter{}},
	},
	"Class 10": {
		{
			ID: 1, Name: "Mathematics", Icon: "📐", Color: "#667eea",
			Chapters: []Chapter{
				{ID: 1, Name: "Real Numbers", PDFURL: "/pdfs/class10/math/real-numbers.pdf", Description: "Properties of real numbers"},
				{ID: 2, Name: "Polynomials", PDFURL: "/pdfs/class10/math/polynomials.pdf", Description: "Understanding polynomial expressions"},
			},
		},
		{ID: 2, Name: "Physics", Icon: "⚛️", Color: "#764ba2", Chapters: []Chapter{}},
		{ID: 3, Name: "Chemistry", Icon: "🧪", Color: "#f093fb", Chapters: []Chapter{}},
		{ID: 4, Name: "Biology", Icon: "🧬", Color: "#4facfe", Chapters: []Chapter{}},
		{
			ID: 5, Name: "Science", Icon: "🔬", Color: "#4facfe",
			Chapters: []Chapter{
				{ID: 1, Name: "Chemical Reactions and Equations", PDFURL: "/pdfs/class10/science/chemical-reactions.pdf", Description: "Understanding chemical changes"},
				{ID: 2, Name: "Acids, Bases and Salts", PDFURL: "/pdfs/class10/science/acids-bases-salts.pdf", Description: "Properties of acids, bases and salts"},
			},
		},
		{ID: 6, Name: "English", Icon: "📚", Color: "#fa709a", Chapters: []Chapter{}},
		{ID: 7, Name: "Social Studies", Icon: "🌍", Color: "#43e97b", Chapters: []Chapter{}},
		{ID: 8, Name: "Computer Science", Icon: "💻", Color: "#38f9d7", Chapters: []Chapter{}},
	},
}
