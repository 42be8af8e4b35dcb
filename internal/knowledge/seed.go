package knowledge

import (
	"context"
	"fmt"
)

var starterEntries = []Entry{
	{Subject: "mathematics", Topic: "Algebra", Subtopic: "Linear equations", Difficulty: Beginner, GradeLevel: "grade 8",
		Keywords: "algebra, equation, variable, solve",
		Content:  "A linear equation has the form ax + b = c. Solve it by isolating the variable: subtract b from both sides, then divide by a."},
	{Subject: "mathematics", Topic: "Algebra", Subtopic: "Quadratic equations", Difficulty: Intermediate, GradeLevel: "grade 10",
		Keywords: "algebra, quadratic, factoring, formula",
		Content:  "A quadratic equation ax^2 + bx + c = 0 can be solved by factoring, completing the square, or the quadratic formula x = (-b ± sqrt(b^2 - 4ac)) / 2a."},
	{Subject: "mathematics", Topic: "Geometry", Subtopic: "Pythagorean theorem", Difficulty: Beginner, GradeLevel: "grade 8",
		Keywords: "geometry, triangle, pythagorean, hypotenuse",
		Content:  "In a right triangle the square of the hypotenuse equals the sum of the squares of the other two sides: a^2 + b^2 = c^2."},
	{Subject: "mathematics", Topic: "Calculus", Subtopic: "Derivatives", Difficulty: Advanced, GradeLevel: "grade 12",
		Keywords: "calculus, derivative, slope, rate of change",
		Content:  "The derivative of a function measures its instantaneous rate of change. Geometrically it is the slope of the tangent line at a point."},
	{Subject: "science", Topic: "Physics", Subtopic: "Newton's laws", Difficulty: Beginner, GradeLevel: "grade 9",
		Keywords: "physics, force, motion, newton, inertia, gravity",
		Content:  "Newton's three laws describe motion: an object keeps its state unless a net force acts, F = ma, and every action has an equal and opposite reaction."},
	{Subject: "science", Topic: "Biology", Subtopic: "Photosynthesis", Difficulty: Beginner, GradeLevel: "grade 7",
		Keywords: "biology, plants, chlorophyll, photosynthesis",
		Content:  "Photosynthesis lets plants turn light energy, water and carbon dioxide into glucose and oxygen inside their chloroplasts."},
	{Subject: "science", Topic: "Chemistry", Subtopic: "Periodic table", Difficulty: Intermediate, GradeLevel: "grade 10",
		Keywords: "chemistry, elements, periodic table, atoms",
		Content:  "The periodic table arranges elements by atomic number. Elements in the same group share similar chemical properties."},
	{Subject: "history", Topic: "Ancient civilizations", Subtopic: "Roman Republic", Difficulty: Beginner, GradeLevel: "grade 6",
		Keywords: "ancient, rome, republic, senate",
		Content:  "The Roman Republic lasted from 509 BC to 27 BC. Power was shared among elected consuls, the Senate and popular assemblies."},
	{Subject: "history", Topic: "Modern history", Subtopic: "World War I", Difficulty: Intermediate, GradeLevel: "grade 10",
		Keywords: "war, modern, europe, alliances",
		Content:  "World War I (1914-1918) grew out of rival alliances, militarism and nationalism, and was triggered by the assassination of Archduke Franz Ferdinand."},
	{Subject: "english", Topic: "Grammar", Subtopic: "Parts of speech", Difficulty: Beginner, GradeLevel: "grade 5",
		Keywords: "grammar, noun, verb, adjective, adverb",
		Content:  "The main parts of speech are nouns, pronouns, verbs, adjectives, adverbs, prepositions, conjunctions and interjections."},
	{Subject: "english", Topic: "Literature", Subtopic: "Shakespeare", Difficulty: Advanced, GradeLevel: "grade 11",
		Keywords: "literature, shakespeare, drama, sonnet",
		Content:  "Shakespeare wrote 39 plays and 154 sonnets. His tragedies such as Hamlet and Macbeth explore ambition, guilt and fate."},
	{Subject: "computer science", Topic: "Algorithms", Subtopic: "Binary search", Difficulty: Intermediate, GradeLevel: "grade 11",
		Keywords: "algorithm, search, sorted, logarithmic",
		Content:  "Binary search finds a value in a sorted list by halving the search range each step, giving O(log n) running time."},
}

// Seed loads the starter entries into an empty knowledge base and reports
// how many were inserted.
func Seed(ctx context.Context, repo *Repo) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range starterEntries {
		e := starterEntries[i]
		e.IsActive = true
		if err := repo.Create(ctx, &e); err != nil {
			return i, fmt.Errorf("seed knowledge entry %q: %w", e.Topic, err)
		}
	}
	return len(starterEntries), nil
}
